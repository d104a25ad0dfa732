package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sushihentaime/bloglist/internal/authservice"
	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid authentication credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, codec *authservice.TokenCodec, tokenTTL time.Duration) *UserService {
	return &UserService{
		m:        newUserModel(db),
		mb:       mb,
		codec:    codec,
		tokenTTL: tokenTTL,
	}
}

// CreateUser registers a new user account and publishes a user.created
// event. The password must be at least 3 characters long; the username must
// be unique.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Password: Password{Plain: password},
	}

	err := u.Password.set(u.Password.Plain)
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

	u.Blogs = []BlogSummary{}

	return &u, nil
}

// LoginUser verifies the credentials and mints a signed bearer token for
// the user.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
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

	token, err := s.codec.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthToken{Token: token, Expiry: time.Now().Add(s.tokenTTL)}, nil
}

// ListUsers returns all users with their owned blogs projected.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}
