package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/statservice"
)

type Blog struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	URL      string   `json:"url"`
	Likes    int      `json:"likes"`
	Comments []string `json:"comments"`

	// User carries the owner display fields. The owning user id is set at
	// creation and never reassigned.
	UserID    int       `json:"user_id"`
	User      Owner     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// CreateBlogInput is the explicit creation schema. Likes is a pointer so an
// absent value can be normalized to 0 instead of being rejected.
type CreateBlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogInput is the partial update schema; nil fields are left
// untouched.
type UpdateBlogInput struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// Stats aggregates a full snapshot of the blog collection.
type Stats struct {
	TotalLikes   int                      `json:"total_likes"`
	FavoriteBlog *statservice.Blog        `json:"favorite_blog"`
	MostBlogs    *statservice.AuthorBlogs `json:"most_blogs"`
	MostLikes    *statservice.AuthorLikes `json:"most_likes"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
