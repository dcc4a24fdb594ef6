package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/repository"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenIssuer
	clock    clock.Clock
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenIssuer, clk clock.Clock) *AuthService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &AuthService{userRepo: userRepo, tokens: tokens, clock: clk}
}

// SignUp registers an account and logs it in.
func (s *AuthService) SignUp(ctx context.Context, request *domain.SignUpRequest) (*domain.TokenResponse, error) {
	email := strings.TrimSpace(request.Email)
	name := strings.TrimSpace(request.Name)
	if email == "" || name == "" {
		return nil, customError.WrapInvalidArgument("name and email are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if existing != nil {
		return nil, customError.WrapEmailTaken()
	}

	hash, salt, err := hashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, wrapRepoError(err)
	}

	return s.issue(user)
}

// LogIn exchanges credentials for a token. Unknown email and wrong password
// fail the same way.
func (s *AuthService) LogIn(ctx context.Context, request *domain.LogInRequest) (*domain.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(request.Email))
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if user == nil {
		return nil, customError.WrapBadCredentials()
	}

	ok, err := verifyPassword(request.Password, user.Salt, user.PasswordHash)
	if err != nil || !ok {
		return nil, customError.WrapBadCredentials()
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its principal.
func (s *AuthService) Authenticate(token string) (*domain.Principal, error) {
	return s.tokens.Validate(token)
}

func (s *AuthService) issue(user *domain.User) (*domain.TokenResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &domain.TokenResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
