package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogplatform/internal/common"
)

// errBlogNotFound reports that the blog a write refers to is gone.
var errBlogNotFound = errors.New("blog not found")

var sortColumns = map[string]string{
	"id":               "id",
	"title":            "title",
	"shortDescription": "short_description",
	"content":          "content",
	"blogId":           "blog_id",
	"blogName":         "blog_name",
	"createdAt":        "created_at",
}

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

// insert copies the blog name into the post in the same statement that reads
// it. A blog that no longer exists yields ErrRecordNotFound and no row.
func (m *PostModel) insert(ctx context.Context, in *PostContent, blogID string, createdAt common.Timestamp) (string, error) {
	query := `
		INSERT INTO posts (title, short_description, content, blog_id, blog_name, created_at)
		SELECT $1::text, $2::text, $3::text, b.id, b.name, $5::timestamptz
		FROM blogs b
		WHERE b.id = $4
		RETURNING id`

	var id string
	err := m.db.QueryRowContext(ctx, query, in.Title, in.ShortDescription, in.Content, blogID, createdAt.Time).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return "", common.ErrRecordNotFound
		default:
			return "", err
		}
	}

	return id, nil
}

func (m *PostModel) getPostByID(ctx context.Context, id string) (*Post, error) {
	query := `
		SELECT id, title, short_description, content, blog_id, blog_name, created_at
		FROM posts
		WHERE id = $1`

	var post Post
	err := m.db.QueryRowContext(ctx, query, id).Scan(&post.ID, &post.Title, &post.ShortDescription, &post.Content, &post.BlogID, &post.BlogName, &post.CreatedAt.Time)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

// getPosts lists posts, restricted to one blog when blogID is not empty.
func (m *PostModel) getPosts(ctx context.Context, blogID string, q common.ListQuery) ([]Post, int, error) {
	var (
		where string
		args  []any
	)
	if blogID != "" {
		where = "WHERE blog_id = $1"
		args = append(args, blogID)
	}

	var total int
	err := m.db.QueryRowContext(ctx, "SELECT count(*) FROM posts "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, title, short_description, content, blog_id, blog_name, created_at
		FROM posts
		%s
		%s
		LIMIT $%d OFFSET $%d`, where, q.OrderBy(sortColumns), len(args)+1, len(args)+2)

	rows, err := m.db.QueryContext(ctx, query, append(args, q.PageSize, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.ShortDescription, &post.Content, &post.BlogID, &post.BlogName, &post.CreatedAt.Time)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// updatePost rewrites the post and takes a fresh blogName from the blog it now
// points at. The blog and the post are resolved in the same statement: a
// missing blog is errBlogNotFound, a missing post is ErrRecordNotFound, and in
// either case no row is touched.
func (m *PostModel) updatePost(ctx context.Context, id string, in *PostInput) error {
	query := `
		WITH b AS (
			SELECT id, name FROM blogs WHERE id = $4
		), u AS (
			UPDATE posts
			SET title = $1, short_description = $2, content = $3, blog_id = b.id, blog_name = b.name
			FROM b
			WHERE posts.id = $5
			RETURNING posts.id
		)
		SELECT EXISTS (SELECT 1 FROM b), EXISTS (SELECT 1 FROM u)`

	var blogFound, updated bool
	err := m.db.QueryRowContext(ctx, query, in.Title, in.ShortDescription, in.Content, in.BlogID, id).Scan(&blogFound, &updated)
	if err != nil {
		return err
	}

	switch {
	case updated:
		return nil
	case !blogFound:
		return errBlogNotFound
	default:
		return common.ErrRecordNotFound
	}
}

func (m *PostModel) deletePost(ctx context.Context, id string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return common.ExpectOneRow(res)
}

func (m *PostModel) deleteAll(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM posts`)
	return err
}
