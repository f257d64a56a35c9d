package postservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/blogplatform/internal/common"
)

func NewPostService(db *sql.DB, cache *common.Cache, blogs BlogLookup) *PostService {
	return &PostService{m: newPostModel(db), c: cache, blogs: blogs}
}

// CreatePost stores a post for the blog named in the body. An unknown blogId
// is a validation failure on that field.
func (s *PostService) CreatePost(ctx context.Context, in *PostInput) (*Post, error) {
	v := common.NewValidator()
	if err := validatePostInput(ctx, v, s.blogs, in); err != nil {
		return nil, err
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	id, err := s.m.insert(ctx, &in.PostContent, in.BlogID, common.Now())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			// the blog was removed after it was checked
			v.AddError("blogId", common.IncorrectMessage("blogId"))
			return nil, v.ValidationError()
		default:
			return nil, err
		}
	}

	return s.GetPostByID(ctx, id)
}

// CreatePostForBlog stores a post under the blog taken from the path. Here an
// unknown blog is common.ErrRecordNotFound, reported after field validation.
func (s *PostService) CreatePostForBlog(ctx context.Context, blogID string, in *PostContent) (*Post, error) {
	v := common.NewValidator()
	if err := validatePostContent(v, in); err != nil {
		return nil, err
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if !common.ValidID(blogID) {
		return nil, common.ErrRecordNotFound
	}

	id, err := s.m.insert(ctx, in, blogID, common.Now())
	if err != nil {
		return nil, err
	}

	return s.GetPostByID(ctx, id)
}

func (s *PostService) GetPostByID(ctx context.Context, id string) (*Post, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	if cached, ok := s.c.Get(common.CacheKeyPost(id)); ok {
		post := cached.(Post)
		return &post, nil
	}

	post, err := s.m.getPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPost(id), *post)

	return post, nil
}

func (s *PostService) GetPosts(ctx context.Context, q common.ListQuery) (common.Page[Post], error) {
	q = q.Normalize()

	posts, total, err := s.m.getPosts(ctx, "", q)
	if err != nil {
		return common.Page[Post]{}, err
	}

	return common.NewPage(posts, total, q), nil
}

// GetPostsByBlog lists the posts of one blog, or returns
// common.ErrRecordNotFound when the blog does not exist.
func (s *PostService) GetPostsByBlog(ctx context.Context, blogID string, q common.ListQuery) (common.Page[Post], error) {
	ok, err := s.blogs.BlogExists(ctx, blogID)
	if err != nil {
		return common.Page[Post]{}, err
	}
	if !ok {
		return common.Page[Post]{}, common.ErrRecordNotFound
	}

	q = q.Normalize()

	posts, total, err := s.m.getPosts(ctx, blogID, q)
	if err != nil {
		return common.Page[Post]{}, err
	}

	return common.NewPage(posts, total, q), nil
}

// UpdatePost validates the body, including blogId, before the post id is
// looked at. blogName is re-read from the blog the post now belongs to.
func (s *PostService) UpdatePost(ctx context.Context, id string, in *PostInput) error {
	v := common.NewValidator()
	if err := validatePostInput(ctx, v, s.blogs, in); err != nil {
		return err
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	if !common.ValidID(id) {
		return common.ErrRecordNotFound
	}

	err := s.m.updatePost(ctx, id, in)
	if err != nil {
		switch {
		case errors.Is(err, errBlogNotFound):
			// the blog was removed after it was checked
			v.AddError("blogId", common.IncorrectMessage("blogId"))
			return v.ValidationError()
		default:
			return err
		}
	}

	s.c.Invalidate(common.CacheKeyPost(id))

	return nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if !common.ValidID(id) {
		return common.ErrRecordNotFound
	}

	err := s.m.deletePost(ctx, id)
	if err != nil {
		return err
	}

	s.c.Invalidate(common.CacheKeyPost(id))

	return nil
}

func (s *PostService) DeleteAll(ctx context.Context) error {
	err := s.m.deleteAll(ctx)
	if err != nil {
		return err
	}

	s.c.Flush()

	return nil
}
