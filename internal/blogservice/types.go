package blogservice

import (
	"database/sql"

	"github.com/sushihentaime/blogplatform/internal/common"
)

type Blog struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	WebsiteURL   string           `json:"websiteUrl"`
	CreatedAt    common.Timestamp `json:"createdAt"`
	IsMembership bool             `json:"isMembership"`
}

// BlogInput is the writable part of a blog, used by both create and update.
type BlogInput struct {
	Name        string `json:"name" validate:"required,max=15"`
	Description string `json:"description" validate:"required,max=500"`
	WebsiteURL  string `json:"websiteUrl" validate:"required,max=100,weburl"`
}

// BlogQuery narrows a blog listing by a case-insensitive name substring.
type BlogQuery struct {
	common.ListQuery
	SearchNameTerm string
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
