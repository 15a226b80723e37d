package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

func NewUserService(db *sql.DB, mb common.MessageProducer) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
	}
}

// CreateUser creates a new user account and publishes a user.created event.
// The plaintext password is hashed before storage and never persisted.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Username string
		Name     string
	}{
		Username: u.Username,
		Name:     u.Name,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, eventData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// GetUsers returns all users with their owned blogs summarized. Password
// hashes never appear in any returned representation.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}

// GetUserByID returns a user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByID(ctx, id)
}

type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// UpdateUser replaces the fields present in the patch. The username is
// immutable once chosen.
func (s *UserService) UpdateUser(ctx context.Context, id int, patch *UpdateUserRequest) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}

	validateName(v, u.Name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteUser deletes a user account. Owned blogs are orphaned rather than
// cascade-deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteUser(ctx, id)
}

// LoginUser checks the credentials and issues an opaque bearer token. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*Token, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return s.m.createToken(ctx, user.ID, AuthTokenTime)
}

// GetUserByAccessToken resolves a bearer token to the user it belongs to.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)

	return s.m.getUserByToken(ctx, hash)
}

// LogoutUser invalidates every token issued to the user.
func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteTokensForUser(ctx, userID)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
