package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kiroku/internal/models"
	"kiroku/internal/repository"
)

// ErrBadCredentials covers both an unknown email and a password mismatch so
// the two cases are indistinguishable to a caller.
var ErrBadCredentials = errors.New("invalid credentials")

type Service struct {
	Repo     repository.Repository
	Secret   []byte
	TokenTTL time.Duration
}

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, email, password, username string) (*Session, error) {
	if username == "" {
		if i := strings.Index(email, "@"); i > 0 {
			username = email[:i]
		} else {
			username = email
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
	}
	if err := s.Repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return s.newSession(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return s.newSession(u)
}

func (s *Service) newSession(u *models.User) (*Session, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	token, err := SignJWT(s.Secret, u.ID, u.Email, ttl)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}
