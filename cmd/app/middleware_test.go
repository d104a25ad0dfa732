package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/bloglist/internal/authservice"
)

// newBareApplication builds an application without any backing services,
// enough for the middleware chain.
func newBareApplication(secret string) (*application, *authservice.TokenCodec) {
	codec := authservice.NewTokenCodec(secret)

	app := &application{
		config: &Config{
			Environment:    "test",
			LimiterRPS:     2,
			LimiterBurst:   4,
			LimiterEnabled: true,
		},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		resolver: authservice.NewResolver(codec),
	}

	return app, codec
}

func TestRecoverPanic(t *testing.T) {
	app, _ := newBareApplication("test-secret")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	middleware := app.recoverPanic(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestAuthenticate(t *testing.T) {
	app, codec := newBareApplication("test-secret")

	valid, err := codec.Issue(42, time.Hour)
	assert.NoError(t, err)

	expired, err := codec.Issue(42, -time.Hour)
	assert.NoError(t, err)

	foreign, err := authservice.NewTokenCodec("other-secret").Issue(42, time.Hour)
	assert.NoError(t, err)

	testCases := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID int
	}{
		{
			name:           "no authentication header continues as anonymous",
			authHeader:     "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong scheme continues as anonymous",
			authHeader:     "Basic abc",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid token resolves an identity",
			authHeader:     fmt.Sprintf("Bearer %s", valid),
			expectedStatus: http.StatusOK,
			expectedUserID: 42,
		},
		{
			name:           "expired token is rejected",
			authHeader:     fmt.Sprintf("Bearer %s", expired),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token signed with another secret is rejected",
			authHeader:     fmt.Sprintf("Bearer %s", foreign),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token is rejected",
			authHeader:     "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotIdentity *authservice.Identity

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity = app.getIdentityContext(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			res := httptest.NewRecorder()

			app.authenticate(next).ServeHTTP(res, req)

			assert.Equal(t, tc.expectedStatus, res.Code)

			if tc.expectedUserID != 0 {
				assert.NotNil(t, gotIdentity)
				assert.Equal(t, tc.expectedUserID, gotIdentity.UserID)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app, codec := newBareApplication("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous request is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		res := httptest.NewRecorder()

		app.authenticate(app.requireAuth(next)).ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("authenticated request passes", func(t *testing.T) {
		token, err := codec.Issue(1, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		res := httptest.NewRecorder()

		app.authenticate(app.requireAuth(next)).ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
	})
}

func TestRateLimit(t *testing.T) {
	app, _ := newBareApplication("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := app.rateLimit(next)

	var lastCode int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res := httptest.NewRecorder()
		middleware.ServeHTTP(res, req)
		lastCode = res.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
