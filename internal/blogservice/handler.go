package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/bloglist/internal/authservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/statservice"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// CreateBlog creates a new blog owned by the caller. A missing likes value
// is normalized to 0; a missing title or url is a validation failure.
func (s *BlogService) CreateBlog(ctx context.Context, identity *authservice.Identity, input *CreateBlogInput) (*Blog, error) {
	if identity == nil {
		return nil, authservice.ErrMissingToken
	}

	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}

	v := common.NewValidator()
	validateTitle(v, input.Title)
	validateURL(v, input.URL)
	validateLikes(v, likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:    input.Title,
		Author:   input.Author,
		URL:      input.URL,
		Likes:    likes,
		Comments: []string{},
		UserID:   identity.UserID,
	}

	err := s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	blog.User.ID = blog.UserID
	s.c.Flush()

	return blog, nil
}

// GetBlogByID returns a blog with its owner display fields and comments.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyBlog(id)
	if cached, ok := s.c.Get(key); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, blog)

	return blog, nil
}

// GetBlogs returns a page of blogs. Default limit is 10 and default offset
// is 0.
func (s *BlogService) GetBlogs(ctx context.Context, limit, offset *int) ([]Blog, error) {
	if limit == nil || *limit < 1 {
		limit = new(int)
		*limit = 10
	}

	if offset == nil || *offset < 0 {
		offset = new(int)
	}

	key := common.CacheKeyBlogs(*limit, *offset)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.getBlogs(ctx, *limit, *offset)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, blogs)

	return blogs, nil
}

// UpdateBlog applies a partial update to a blog by id and returns the
// updated record. Deliberately performs no ownership check: any caller who
// knows the id may update. Delete is the only owner-gated mutation.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, input *UpdateBlogInput) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Author != nil {
		blog.Author = *input.Author
	}
	if input.URL != nil {
		blog.URL = *input.URL
	}
	if input.Likes != nil {
		blog.Likes = *input.Likes
	}

	validateTitle(v, blog.Title)
	validateURL(v, blog.URL)
	validateLikes(v, blog.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.c.Flush()

	return blog, nil
}

// DeleteBlog removes a blog after verifying the caller owns it. A missing
// target is reported as success: delete is idempotent-by-absence.
func (s *BlogService) DeleteBlog(ctx context.Context, identity *authservice.Identity, id int) error {
	if identity == nil {
		return authservice.ErrMissingToken
	}

	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	ownerID, err := s.m.getBlogOwner(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return nil
		default:
			return err
		}
	}

	// The fetch and the delete are separate statements; the window between
	// them is harmless because the owner never changes after creation.
	if err := authservice.Authorize(identity, ownerID); err != nil {
		return err
	}

	err = s.m.deleteBlog(ctx, id)
	if err != nil {
		return err
	}

	s.c.Flush()

	return nil
}

// AddComment appends a comment to a blog and returns the updated record.
// Comments are append-only; there is no ownership gate on this path.
func (s *BlogService) AddComment(ctx context.Context, id int, comment string) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateComment(v, comment)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insertComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}

	s.c.Flush()

	return s.m.getBlogByID(ctx, id)
}

// GetStats computes the aggregate statistics over a snapshot of the whole
// collection.
func (s *BlogService) GetStats(ctx context.Context) (*Stats, error) {
	key := common.CacheKeyBlogStats()
	if cached, ok := s.c.Get(key); ok {
		return cached.(*Stats), nil
	}

	snapshot, err := s.m.getBlogSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalLikes:   statservice.TotalLikes(snapshot),
		FavoriteBlog: statservice.FavoriteBlog(snapshot),
		MostBlogs:    statservice.MostBlogs(snapshot),
		MostLikes:    statservice.MostLikes(snapshot),
	}

	s.c.Set(key, stats)

	return stats, nil
}
