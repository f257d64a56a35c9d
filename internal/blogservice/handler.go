package blogservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/blogplatform/internal/common"
)

func NewBlogService(db *sql.DB, cache *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: cache}
}

// CreateBlog validates the input, stores a new blog and returns it as read back
// from the store.
func (s *BlogService) CreateBlog(ctx context.Context, in *BlogInput) (*Blog, error) {
	v := common.NewValidator()
	if err := validateBlogInput(v, in); err != nil {
		return nil, err
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	id, err := s.m.insert(ctx, in, common.Now())
	if err != nil {
		return nil, err
	}

	return s.GetBlogByID(ctx, id)
}

// GetBlogByID returns common.ErrRecordNotFound for unknown or malformed ids.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		blog := cached.(Blog)
		return &blog, nil
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), *blog)

	return blog, nil
}

// BlogExists reports whether id names a stored blog. Malformed ids do not.
func (s *BlogService) BlogExists(ctx context.Context, id string) (bool, error) {
	if !common.ValidID(id) {
		return false, nil
	}

	if _, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		return true, nil
	}

	return s.m.exists(ctx, id)
}

func (s *BlogService) GetBlogs(ctx context.Context, q BlogQuery) (common.Page[Blog], error) {
	q.ListQuery = q.ListQuery.Normalize()

	blogs, total, err := s.m.getBlogs(ctx, q)
	if err != nil {
		return common.Page[Blog]{}, err
	}

	return common.NewPage(blogs, total, q.ListQuery), nil
}

// UpdateBlog overwrites name, description and websiteUrl. Validation runs
// before the id is looked at.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, in *BlogInput) error {
	v := common.NewValidator()
	if err := validateBlogInput(v, in); err != nil {
		return err
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	if !common.ValidID(id) {
		return common.ErrRecordNotFound
	}

	err := s.m.updateBlog(ctx, id, in)
	if err != nil {
		return err
	}

	s.c.Invalidate(common.CacheKeyBlog(id))

	return nil
}

// DeleteBlog removes the blog only. Its posts keep their blogId and blogName.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	if !common.ValidID(id) {
		return common.ErrRecordNotFound
	}

	err := s.m.deleteBlog(ctx, id)
	if err != nil {
		return err
	}

	s.c.Invalidate(common.CacheKeyBlog(id))

	return nil
}

func (s *BlogService) DeleteAll(ctx context.Context) error {
	err := s.m.deleteAll(ctx)
	if err != nil {
		return err
	}

	s.c.Flush()

	return nil
}
