package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEditConflict   = errors.New("edit conflict")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrUserForeignKey = errors.New("user_id does not exist")
	ErrNotOwner       = errors.New("caller does not own this blog")
	ErrNoOwner        = errors.New("blog has no owner on record")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// foreignKeyError is a helper function to check if the error is a foreign key constraint error.
func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// uniqueViolationError is a helper function to check if the error is a unique constraint error.
func uniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog, ownerID int) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, comments, created_at, updated_at, version`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, ownerID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, pq.Array(&blog.Comments), &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case uniqueViolationError(err, "blogs_title_key"):
			return ErrDuplicateTitle
		case foreignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	blog.Owner = &Owner{ID: ownerID}

	return nil
}

// getBlogByID fetches a blog joined with its owner summary. The join is a
// LEFT JOIN because deleting a user orphans their blogs rather than
// cascading.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.comments, b.created_at, b.updated_at, b.version, u.id, u.username, u.name
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	blog, err := scanBlog(row.Scan)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

// getBlogs fetches all blogs with their owner summaries, newest first. The
// listing is a full scan; there is no pagination.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.comments, b.created_at, b.updated_at, b.version, u.id, u.username, u.name
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows.Scan)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func scanBlog(scan func(dest ...any) error) (*Blog, error) {
	var blog Blog
	var ownerID sql.NullInt64
	var ownerUsername, ownerName sql.NullString

	err := scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, pq.Array(&blog.Comments), &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &ownerID, &ownerUsername, &ownerName)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		blog.Owner = &Owner{
			ID:       int(ownerID.Int64),
			Username: ownerUsername.String,
			Name:     ownerName.String,
		}
	}

	return &blog, nil
}

func (m *BlogModel) update(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, author = $2, url = $3, likes = $4, updated_at = NOW(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID, blog.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		// the caller fetched this row moments ago, so no match means the
		// version moved underneath it
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case uniqueViolationError(err, "blogs_title_key"):
			return ErrDuplicateTitle
		default:
			return err
		}
	}

	return nil
}

// deleteBlog removes a blog scoped to its owner. Both conditions sit in the
// WHERE clause so an ownership change between the gate check and the delete
// cannot remove somebody else's blog.
func (m *BlogModel) deleteBlog(ctx context.Context, blogID, ownerID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, ownerID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// like increments the like counter in a single statement so concurrent likes
// never lose updates.
func (m *BlogModel) like(ctx context.Context, id int) (int, error) {
	query := `
		UPDATE blogs
		SET likes = likes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING likes`

	var likes int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&likes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return likes, nil
}

// addComment appends to the comments array in a single statement, preserving
// insertion order under concurrent writes.
func (m *BlogModel) addComment(ctx context.Context, id int, comment string) ([]string, error) {
	query := `
		UPDATE blogs
		SET comments = array_append(comments, $1), updated_at = NOW()
		WHERE id = $2
		RETURNING comments`

	var comments []string
	err := m.db.QueryRowContext(ctx, query, comment, id).Scan(pq.Array(&comments))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return comments, nil
}
