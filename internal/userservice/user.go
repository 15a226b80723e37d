package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// uniqueViolationError reports whether err is a postgres unique constraint
// violation on the named constraint.
func uniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case uniqueViolationError(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	u.Blogs = []BlogSummary{}

	return nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, password_hash, created_at, updated_at, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUserByID fetches a user together with summaries of the blogs they own.
func (m *DBModel) getUserByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT u.id, u.username, u.name, u.created_at, u.updated_at, u.version, b.id, b.title, b.author
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		WHERE u.id = $1
		ORDER BY b.id`

	rows, err := m.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users, err := foldUserRows(rows)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, ErrNotFound
	}

	return &users[0], nil
}

// getUsers fetches all users with summaries of their owned blogs.
func (m *DBModel) getUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT u.id, u.username, u.name, u.created_at, u.updated_at, u.version, b.id, b.title, b.author
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		ORDER BY u.id, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return foldUserRows(rows)
}

// foldUserRows collapses user/blog join rows into one User per id. Rows must
// be ordered by user id.
func foldUserRows(rows *sql.Rows) ([]User, error) {
	users := []User{}

	for rows.Next() {
		var u User
		var blogID sql.NullInt64
		var blogTitle, blogAuthor sql.NullString

		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.UpdatedAt, &u.Version, &blogID, &blogTitle, &blogAuthor)
		if err != nil {
			return nil, err
		}

		if len(users) == 0 || users[len(users)-1].ID != u.ID {
			u.Blogs = []BlogSummary{}
			users = append(users, u)
		}

		if blogID.Valid {
			last := &users[len(users)-1]
			last.Blogs = append(last.Blogs, BlogSummary{
				ID:     int(blogID.Int64),
				Title:  blogTitle.String,
				Author: blogAuthor.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *DBModel) updateUser(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = $1, updated_at = NOW(), version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING updated_at, version`

	err := m.db.QueryRowContext(ctx, query, u.Name, u.ID, u.Version).Scan(&u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrNotFound
		default:
			return err
		}
	}

	return nil
}

// deleteUser removes a user. Their blogs are orphaned, not deleted: the
// blogs.user_id foreign key is set to NULL by the store.
func (m *DBModel) deleteUser(ctx context.Context, id int) error {
	query := `
		DELETE FROM users
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
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
			return ErrNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
