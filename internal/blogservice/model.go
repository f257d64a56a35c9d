package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogplatform/internal/common"
)

// sortColumns maps the public field names a client may sort by to columns.
var sortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"description":  "description",
	"websiteUrl":   "website_url",
	"createdAt":    "created_at",
	"isMembership": "is_membership",
}

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) insert(ctx context.Context, in *BlogInput, createdAt common.Timestamp) (string, error) {
	query := `
		INSERT INTO blogs (name, description, website_url, is_membership, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id`

	var id string
	err := m.db.QueryRowContext(ctx, query, in.Name, in.Description, in.WebsiteURL, createdAt.Time).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (m *BlogModel) getBlogByID(ctx context.Context, id string) (*Blog, error) {
	query := `
		SELECT id, name, description, website_url, created_at, is_membership
		FROM blogs
		WHERE id = $1`

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Name, &blog.Description, &blog.WebsiteURL, &blog.CreatedAt.Time, &blog.IsMembership)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)`

	var ok bool
	err := m.db.QueryRowContext(ctx, query, id).Scan(&ok)
	return ok, err
}

// getBlogs returns one page of blogs matching q together with the number of
// blogs matching the filter across all pages.
func (m *BlogModel) getBlogs(ctx context.Context, q BlogQuery) ([]Blog, int, error) {
	pattern := common.ContainsPattern(q.SearchNameTerm)

	var total int
	err := m.db.QueryRowContext(ctx, `SELECT count(*) FROM blogs WHERE name ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, website_url, created_at, is_membership
		FROM blogs
		WHERE name ILIKE $1
		%s
		LIMIT $2 OFFSET $3`, q.OrderBy(sortColumns))

	rows, err := m.db.QueryContext(ctx, query, pattern, q.PageSize, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Name, &blog.Description, &blog.WebsiteURL, &blog.CreatedAt.Time, &blog.IsMembership)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// updateBlog never creates a row: a missing id surfaces as ErrRecordNotFound.
func (m *BlogModel) updateBlog(ctx context.Context, id string, in *BlogInput) error {
	query := `
		UPDATE blogs
		SET name = $1, description = $2, website_url = $3
		WHERE id = $4`

	res, err := m.db.ExecContext(ctx, query, in.Name, in.Description, in.WebsiteURL, id)
	if err != nil {
		return err
	}

	return common.ExpectOneRow(res)
}

func (m *BlogModel) deleteBlog(ctx context.Context, id string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return common.ExpectOneRow(res)
}

func (m *BlogModel) deleteAll(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM blogs`)
	return err
}
