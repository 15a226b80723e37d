package blogservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// ListStats aggregates the list analytics over every stored blog.
type ListStats struct {
	TotalLikes   int            `json:"total_likes"`
	FavoriteBlog FavoriteResult `json:"favorite_blog"`
	MostBlogs    AuthorCount    `json:"most_blogs"`
	MostLikes    AuthorLikes    `json:"most_likes"`
}

// CreateBlog creates a new blog post owned by the verified caller. Ownership
// is never taken from the request payload. Likes default to zero when absent.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest, ownerID int) (*Blog, error) {
	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateAuthor(v, req.Author)
	validateLikes(v, likes)
	validateInt(v, ownerID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  likes,
	}

	err := s.m.insert(ctx, blog, ownerID)
	if err != nil {
		return nil, err
	}

	s.invalidate(blog.ID)

	return s.m.getBlogByID(ctx, blog.ID)
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

// GetBlogs returns all blog posts, each annotated with its owner summary when
// the owner still exists.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogList); ok {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogList, blogs)

	return blogs, nil
}

// UpdateBlog replaces the fields present in the patch. Only the user who
// created the blog post can update it.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, patch *UpdateBlogRequest, callerID int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, callerID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.gate(callerID, blog); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		blog.Title = *patch.Title
	}
	if patch.Author != nil {
		blog.Author = *patch.Author
	}
	if patch.URL != nil {
		blog.URL = *patch.URL
	}
	if patch.Likes != nil {
		blog.Likes = *patch.Likes
	}

	validateTitle(v, blog.Title)
	validateAuthor(v, blog.Author)
	validateLikes(v, blog.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.invalidate(id)

	return blog, nil
}

// DeleteBlog deletes a blog post. Only the user who created the blog post can
// delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, callerID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, callerID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.gate(callerID, blog); err != nil {
		return err
	}

	err = s.m.deleteBlog(ctx, id, callerID)
	if err != nil {
		return err
	}

	s.invalidate(id)

	return nil
}

// LikeBlog increments the like counter of a blog. Liking is open to any
// caller.
func (s *BlogService) LikeBlog(ctx context.Context, id int) (int, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	likes, err := s.m.like(ctx, id)
	if err != nil {
		return 0, err
	}

	s.invalidate(id)

	return likes, nil
}

// AddComment appends an anonymous comment to a blog.
func (s *BlogService) AddComment(ctx context.Context, id int, comment string) ([]string, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateComment(v, comment)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comments, err := s.m.addComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}

	s.invalidate(id)

	return comments, nil
}

// Stats computes the list analytics over all stored blogs.
func (s *BlogService) Stats(ctx context.Context) (*ListStats, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogStats); ok {
		return cached.(*ListStats), nil
	}

	blogs, err := s.GetBlogs(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ListStats{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}

	s.c.Set(common.CacheKeyBlogStats, stats)

	return stats, nil
}

// gate translates the ownership decision into the service error taxonomy.
func (s *BlogService) gate(callerID int, blog *Blog) error {
	switch Decide(&callerID, blog) {
	case Allowed:
		return nil
	case Forbidden:
		return ErrNotOwner
	default:
		return ErrNoOwner
	}
}

func (s *BlogService) invalidate(id int) {
	s.c.Delete(common.CacheKeyBlog(id))
	s.c.Delete(common.CacheKeyBlogList)
	s.c.Delete(common.CacheKeyBlogStats)
}
