package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/sushihentaime/bloglist/internal/statservice"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign
// key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogByID returns a blog with its owner display fields and comments.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, b.version, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &blog.User.Username, &blog.User.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	blog.User.ID = blog.UserID

	comments, err := m.getComments(ctx, []int{blog.ID})
	if err != nil {
		return nil, err
	}

	blog.Comments = comments[blog.ID]
	if blog.Comments == nil {
		blog.Comments = []string{}
	}

	return &blog, nil
}

// getBlogOwner returns only the stored owner id of a blog, for the
// authorization fetch before a delete.
func (m *BlogModel) getBlogOwner(ctx context.Context, id int) (int, error) {
	query := `
		SELECT user_id
		FROM blogs
		WHERE id = $1`

	var ownerID int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&ownerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return ownerID, nil
}

// getBlogs returns a page of blogs with owner display fields and comments,
// newest first.
func (m *BlogModel) getBlogs(ctx context.Context, limit, offset int) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, b.version, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	var ids []int
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &blog.User.Username, &blog.User.Name)
		if err != nil {
			return nil, err
		}
		blog.User.ID = blog.UserID
		blog.Comments = []string{}
		blogs = append(blogs, blog)
		ids = append(ids, blog.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	comments, err := m.getComments(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range blogs {
		if c, ok := comments[blogs[i].ID]; ok {
			blogs[i].Comments = c
		}
	}

	return blogs, nil
}

// getComments loads the comments for a set of blogs in insertion order.
func (m *BlogModel) getComments(ctx context.Context, blogIDs []int) (map[int][]string, error) {
	comments := make(map[int][]string)
	if len(blogIDs) == 0 {
		return comments, nil
	}

	query := `
		SELECT blog_id, body
		FROM blog_comments
		WHERE blog_id = ANY($1)
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, pq.Array(blogIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var blogID int
		var body string
		if err := rows.Scan(&blogID, &body); err != nil {
			return nil, err
		}
		comments[blogID] = append(comments[blogID], body)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, author = $2, url = $3, likes = $4, updated_at = now(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version, updated_at`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID, blog.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.Version, &blog.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	_, err := m.db.ExecContext(ctx, query, id)
	return err
}

func (m *BlogModel) insertComment(ctx context.Context, blogID int, body string) error {
	query := `
		INSERT INTO blog_comments (blog_id, body)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, blogID, body)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blog_comments_blog_id_fkey"):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// getBlogSnapshot returns the full collection in creation order for the
// aggregation functions.
func (m *BlogModel) getBlogSnapshot(ctx context.Context) ([]statservice.Blog, error) {
	query := `
		SELECT title, author, url, likes
		FROM blogs
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []statservice.Blog{}
	for rows.Next() {
		var blog statservice.Blog
		if err := rows.Scan(&blog.Title, &blog.Author, &blog.URL, &blog.Likes); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
