package userservice

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"errors"
	"time"
)

func hashToken(token string) []byte {
	hash := sha256.Sum256([]byte(token))
	return hash[:]
}

func newToken(userID int, ttl time.Duration) (*Token, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	token := &Token{
		Plain:  base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes),
		UserID: userID,
		Expiry: time.Now().Add(ttl),
	}

	token.Hash = hashToken(token.Plain)

	return token, nil
}

func (m *DBModel) insertToken(ctx context.Context, token *Token) error {
	query := `
		INSERT INTO tokens (hash, user_id, expiry)
		VALUES ($1, $2, $3)`

	_, err := m.db.ExecContext(ctx, query, token.Hash, token.UserID, token.Expiry)
	return err
}

func (m *DBModel) createToken(ctx context.Context, userID int, ttl time.Duration) (*Token, error) {
	token, err := newToken(userID, ttl)
	if err != nil {
		return nil, err
	}

	err = m.insertToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return token, nil
}

// getUserByToken resolves an unexpired token hash to its user.
func (m *DBModel) getUserByToken(ctx context.Context, hash []byte) (*User, error) {
	query := `
		SELECT u.id, u.username, u.name, u.password_hash, u.created_at, u.updated_at, u.version
		FROM users u
		INNER JOIN tokens t ON u.id = t.user_id
		WHERE t.hash = $1 AND t.expiry > $2`

	var u User
	err := m.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, &u.CreatedAt, &u.UpdatedAt, &u.Version)
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

func (m *DBModel) deleteTokensForUser(ctx context.Context, userID int) error {
	query := `
		DELETE FROM tokens
		WHERE user_id = $1`

	_, err := m.db.ExecContext(ctx, query, userID)
	return err
}
