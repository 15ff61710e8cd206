// Package services contains server-side business logic. This file implements
// UserService: account registration, credential checks and bearer token
// issuance.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/common"
	"github.com/dmitrijs2005/supportchat/internal/logging"
	"github.com/dmitrijs2005/supportchat/internal/server/auth"
	"github.com/dmitrijs2005/supportchat/internal/server/config"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"github.com/dmitrijs2005/supportchat/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost     = 10
	minUsernameLen = 3
	minPasswordLen = 6
)

const (
	msgCredentialsRequired = "Username and password are required."
	msgUsernameTooShort    = "Username must be at least 3 characters long."
	msgPasswordTooShort    = "Password must be at least 6 characters long."
	msgPasswordTooLong     = "Password must be at most 72 bytes long."
)

// Identity names an authenticated account.
type Identity struct {
	UserID   string
	Username string
}

// Session is the result of a successful signup or login.
type Session struct {
	Identity
	Token string
}

type UserService struct {
	users     users.Repository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    logging.Logger
	now       func() time.Time
	newID     func() string
}

func NewUserService(repo users.Repository, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		users:     repo,
		jwtSecret: []byte(cfg.SecretKey),
		tokenTTL:  cfg.TokenTTL,
		logger:    l.With("module", "users"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Register validates the credentials, hashes the password and stores a new
// user. A taken username yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*Identity, error) {
	username = strings.TrimSpace(username)

	switch {
	case username == "" || password == "":
		return nil, common.ValidationError(msgCredentialsRequired)
	case len([]rune(username)) < minUsernameLen:
		return nil, common.ValidationError(msgUsernameTooShort)
	case len(password) < minPasswordLen:
		return nil, common.ValidationError(msgPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.ValidationError(msgPasswordTooLong)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		UserName:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return &Identity{UserID: user.ID, Username: user.UserName}, nil
}

// Authenticate checks the credentials. An unknown username and a wrong
// password both yield common.ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ValidationError(msgCredentialsRequired)
	}

	user, err := s.users.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return &Identity{UserID: user.ID, Username: user.UserName}, nil
}

// IssueToken signs a bearer token for id valid for the configured TTL.
func (s *UserService) IssueToken(id *Identity) (string, error) {
	return auth.GenerateToken(id.UserID, id.Username, s.jwtSecret, s.tokenTTL)
}

// ParseToken verifies a bearer token and returns the identity it carries.
func (s *UserService) ParseToken(token string) (*Identity, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// Signup registers the user and returns a fresh session.
func (s *UserService) Signup(ctx context.Context, username, password string) (*Session, error) {
	id, err := s.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(id)
}

// Login authenticates the user and returns a fresh session.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	id, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(id)
}

func (s *UserService) newSession(id *Identity) (*Session, error) {
	token, err := s.IssueToken(id)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Identity: *id, Token: token}, nil
}
