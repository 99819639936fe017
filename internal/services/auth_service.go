package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/proconnect/backend/internal/models"
	"github.com/proconnect/backend/internal/repository"
	appErr "github.com/proconnect/backend/pkg/errors"
	"github.com/proconnect/backend/pkg/logger"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Title    *string
	Bio      *string
}

// AuthService handles registration and login. Both return a fresh session
// token alongside the user, matching the register-then-post flow of clients.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenService
}

func NewAuthService(users repository.UserRepository, tokens TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (string, *models.User, error) {
	var existing models.User
	if err := s.users.GetByEmail(ctx, input.Email, &existing); err == nil {
		return "", nil, appErr.New(appErr.CodeConflict, "email already registered")
	} else if !appErr.IsCode(err, appErr.CodeNotFound) {
		return "", nil, err
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	u := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(ph),
		Title:        input.Title,
		Bio:          input.Bio,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(u.ID.String())
	if err != nil {
		return "", nil, err
	}

	logger.L().Info("user registered", zap.String("user_id", u.ID.String()))
	return token, u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var u models.User
	if err := s.users.GetByEmail(ctx, email, &u); err != nil {
		// Same response for unknown email and bad password.
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.Issue(u.ID.String())
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}
