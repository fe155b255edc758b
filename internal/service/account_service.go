package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/observability"
	"github.com/spec-kit/course-marketplace/internal/repository"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

// TokenIssuer signs tokens for a role. auth.TokenManager implements it.
type TokenIssuer interface {
	Issue(principalID string, role domain.Role) (string, time.Time, error)
}

// AccountService coordinates signup and signin for one role.
type AccountService struct {
	role       domain.Role
	accounts   repository.AccountRepository
	tokens     TokenIssuer
	bcryptCost int
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AccountDependencies encapsulates collaborators for the account service.
type AccountDependencies struct {
	Accounts   repository.AccountRepository
	Tokens     TokenIssuer
	BcryptCost int
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAccountService builds the service for role.
func NewAccountService(role domain.Role, deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		role:       role,
		accounts:   deps.Accounts,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger.With(zap.String("role", string(role))),
	}
}

// Role returns the principal kind this service manages.
func (s *AccountService) Role() domain.Role {
	return s.role
}

// Signup creates an account. The email pre-check only short-circuits the common
// case; the unique index decides concurrent signups.
func (s *AccountService) Signup(ctx context.Context, firstName, lastName, email, password string) (*domain.Account, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", map[string]any{"email": email})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("user already exists", map[string]any{"email": email})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordSignup(string(s.role))
	publish(ctx, s.dispatcher, s.logger, events.New(
		events.SignedUpEvent(s.role),
		account.ID,
		domain.Principal{Role: s.role, ID: account.ID},
		events.AccountPayload{Email: account.Email},
	))
	s.logger.Info("account created", zap.String("account_id", account.ID))
	return account, nil
}

// Signin checks credentials and issues a token signed with the role's secret.
func (s *AccountService) Signin(ctx context.Context, email, password string) (string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, apperrors.NewBadCredentials()
		}
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewBadCredentials()
	}

	token, exp, err := s.tokens.Issue(account.ID, s.role)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}
