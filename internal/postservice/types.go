package postservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/blogplatform/internal/common"
)

type Post struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	ShortDescription string           `json:"shortDescription"`
	Content          string           `json:"content"`
	BlogID           string           `json:"blogId"`
	BlogName         string           `json:"blogName"`
	CreatedAt        common.Timestamp `json:"createdAt"`
}

// PostContent is the part of a post written through a blog's own route, where
// the blog comes from the path.
type PostContent struct {
	Title            string `json:"title" validate:"required,max=30"`
	ShortDescription string `json:"shortDescription" validate:"required,max=100"`
	Content          string `json:"content" validate:"required,max=1000"`
}

// PostInput is the body of POST /posts and PUT /posts/:id.
type PostInput struct {
	PostContent
	BlogID string `json:"blogId" validate:"required"`
}

// BlogLookup resolves blog ids for the referential checks on posts.
type BlogLookup interface {
	BlogExists(ctx context.Context, id string) (bool, error)
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m     *PostModel
	c     *common.Cache
	blogs BlogLookup
}
