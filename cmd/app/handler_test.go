package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func blogPath(id float64) string {
	return fmt.Sprintf("/v1/blogs/%d", int(id))
}

func registerAndLogin(t *testing.T, ts *testServer, username, password string) string {
	t.Helper()

	code, _, _ := ts.post(t, "/v1/users", map[string]string{
		"username": username,
		"name":     "Test User",
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusCreated, code)

	code, _, body := ts.post(t, "/v1/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusOK, code)

	token := body["token"].(map[string]any)["token"].(string)
	assert.NotEmpty(t, token)

	return token
}

func createTestBlog(t *testing.T, ts *testServer, token string, payload map[string]any) float64 {
	t.Helper()

	code, _, body := ts.post(t, "/v1/blogs", payload, &token)
	assert.Equal(t, http.StatusCreated, code)

	return body["blog"].(map[string]any)["id"].(float64)
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/v1/healthcheck", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "available", body["status"])
}

func TestRegisterUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("valid registration", func(t *testing.T) {
		code, _, body := ts.post(t, "/v1/users", map[string]string{
			"username": "mluukkai",
			"name":     "Matti Luukkainen",
			"password": "salainen",
		}, nil)

		assert.Equal(t, http.StatusCreated, code)
		user := body["user"].(map[string]any)
		assert.Equal(t, "mluukkai", user["username"])
	})

	t.Run("duplicate username", func(t *testing.T) {
		code, _, body := ts.post(t, "/v1/users", map[string]string{
			"username": "mluukkai",
			"name":     "Someone Else",
			"password": "salainen",
		}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, body["error"].(map[string]any), "username")
	})

	t.Run("password too short", func(t *testing.T) {
		code, _, body := ts.post(t, "/v1/users", map[string]string{
			"username": "shortpw",
			"name":     "Short Password",
			"password": "pw",
		}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, body["error"].(map[string]any), "password")
	})
}

func TestListUsersHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "salainen")
	createTestBlog(t, ts, token, map[string]any{
		"title":  "React patterns",
		"author": "Michael Chan",
		"url":    "https://reactpatterns.com/",
		"likes":  7,
	})

	code, _, body := ts.get(t, "/v1/users", nil)
	assert.Equal(t, http.StatusOK, code)

	users := body["users"].([]any)
	assert.Len(t, users, 1)

	blogs := users[0].(map[string]any)["blogs"].([]any)
	assert.Len(t, blogs, 1)
	blog := blogs[0].(map[string]any)
	assert.Equal(t, "React patterns", blog["title"])
	assert.Equal(t, "https://reactpatterns.com/", blog["url"])
	assert.Equal(t, "Michael Chan", blog["author"])
}

func TestCreateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "salainen")

	t.Run("requires a token", func(t *testing.T) {
		code, _, _ := ts.post(t, "/v1/blogs", map[string]any{
			"title": "React patterns",
			"url":   "https://reactpatterns.com/",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("likes defaults to zero", func(t *testing.T) {
		code, _, body := ts.post(t, "/v1/blogs", map[string]any{
			"title": "React patterns",
			"url":   "https://reactpatterns.com/",
		}, &token)

		assert.Equal(t, http.StatusCreated, code)
		blog := body["blog"].(map[string]any)
		assert.Equal(t, float64(0), blog["likes"])
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		code, _, body := ts.post(t, "/v1/blogs", map[string]any{
			"url": "https://reactpatterns.com/",
		}, &token)

		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, body["error"].(map[string]any), "title")
	})
}

func TestUpdateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "salainen")
	id := createTestBlog(t, ts, token, map[string]any{
		"title": "Type wars",
		"url":   "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html",
		"likes": 2,
	})

	// no Authorization header on purpose: update is open to any caller who
	// knows the id, unlike delete
	code, _, body := ts.put(t, blogPath(id), map[string]any{"likes": 3}, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["blog"].(map[string]any)["likes"])

	t.Run("unknown id", func(t *testing.T) {
		code, _, _ := ts.put(t, "/v1/blogs/999999", map[string]any{"likes": 3}, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestDeleteBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	owner := registerAndLogin(t, ts, "mluukkai", "salainen")
	other := registerAndLogin(t, ts, "hellas", "salainen")

	id := createTestBlog(t, ts, owner, map[string]any{
		"title": "First class tests",
		"url":   "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.html",
	})

	t.Run("requires a token", func(t *testing.T) {
		code, _, _ := ts.delete(t, blogPath(id), nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		code, _, _ := ts.delete(t, blogPath(id), &other)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("owner can delete", func(t *testing.T) {
		code, _, _ := ts.delete(t, blogPath(id), &owner)
		assert.Equal(t, http.StatusNoContent, code)
	})

	t.Run("deleting again still succeeds", func(t *testing.T) {
		code, _, _ := ts.delete(t, blogPath(id), &owner)
		assert.Equal(t, http.StatusNoContent, code)
	})
}

func TestAddCommentHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "salainen")
	id := createTestBlog(t, ts, token, map[string]any{
		"title": "Canonical string reduction",
		"url":   "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html",
	})

	// comments need no token
	code, _, body := ts.post(t, blogPath(id)+"/comments", map[string]string{"comment": "great read"}, nil)
	assert.Equal(t, http.StatusCreated, code)

	comments := body["blog"].(map[string]any)["comments"].([]any)
	assert.Equal(t, []any{"great read"}, comments)

	t.Run("unknown blog", func(t *testing.T) {
		code, _, _ := ts.post(t, "/v1/blogs/999999/comments", map[string]string{"comment": "lost"}, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestBlogStatsHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "salainen")
	createTestBlog(t, ts, token, map[string]any{
		"title": "React patterns", "author": "Michael Chan", "url": "https://reactpatterns.com/", "likes": 7,
	})
	createTestBlog(t, ts, token, map[string]any{
		"title": "Go To Statement Considered Harmful", "author": "Edsger W. Dijkstra", "url": "http://example.com/goto", "likes": 5,
	})
	createTestBlog(t, ts, token, map[string]any{
		"title": "Canonical string reduction", "author": "Edsger W. Dijkstra", "url": "http://example.com/csr", "likes": 12,
	})

	code, _, body := ts.get(t, "/v1/stats", nil)
	assert.Equal(t, http.StatusOK, code)

	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(24), stats["total_likes"])
	assert.Equal(t, "Canonical string reduction", stats["favorite_blog"].(map[string]any)["title"])
	assert.Equal(t, "Edsger W. Dijkstra", stats["most_blogs"].(map[string]any)["author"])
	assert.Equal(t, float64(17), stats["most_likes"].(map[string]any)["likes"])
}
