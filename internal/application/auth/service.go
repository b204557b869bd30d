// Package auth provides the application layer for session bootstrap and
// account management. The bootstrap mirrors a client-side startup flow:
// present a token and resume, or fall back to anonymous sign-in.
package auth

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/domain/user"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/security"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/outbound"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the session bootstrap and account use cases
type Service struct {
	userRepo    outbound.UserRepository
	authService *security.AuthService
	logger      *zap.Logger
}

// NewService creates a new auth service
func NewService(
	userRepo outbound.UserRepository,
	authService *security.AuthService,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		authService: authService,
		logger:      logger.Named("auth-service"),
	}
}

// RegisterCommand contains registration data
type RegisterCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginCommand contains login data
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionDTO describes an established session
type SessionDTO struct {
	UserID      uuid.UUID `json:"user_id"`
	Anonymous   bool      `json:"anonymous"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Resumed     bool      `json:"resumed"`
}

// Bootstrap establishes a session. A valid bearer token resumes the
// existing session; anything else falls back to anonymous sign-in.
func (s *Service) Bootstrap(ctx context.Context, bearerToken string) (*SessionDTO, error) {
	if bearerToken != "" {
		if dto, err := s.resume(ctx, bearerToken); err == nil {
			return dto, nil
		}
		// Invalid or expired token is not an error at bootstrap; the
		// fallback is a fresh anonymous session.
		s.logger.Debug("Token resume failed, falling back to anonymous sign-in")
	}

	anon := user.NewAnonymous()
	if err := s.userRepo.Create(ctx, anon); err != nil {
		return nil, errors.NewDatabaseError("create anonymous user", err)
	}

	token, session, err := s.authService.IssueToken(ctx, anon.ID(), true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	s.logger.Info("Anonymous session established",
		zap.String("user_id", anon.ID().String()),
	)

	return &SessionDTO{
		UserID:      anon.ID(),
		Anonymous:   true,
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// resume validates a presented token and re-reports the existing session
func (s *Service) resume(ctx context.Context, token string) (*SessionDTO, error) {
	claims, err := s.authService.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastSeen(ctx, existing.ID()); err != nil {
		s.logger.Warn("Failed to update last seen", zap.Error(err))
	}

	return &SessionDTO{
		UserID:      existing.ID(),
		Anonymous:   existing.IsAnonymous(),
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
		Resumed:     true,
	}, nil
}

// Register creates a registered account and opens a session for it
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*SessionDTO, error) {
	s.logger.Info("Registering new user", zap.String("email", cmd.Email))

	if existing, err := s.userRepo.FindByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, errors.NewEmailAlreadyExistsError(cmd.Email)
	}

	newUser, err := user.NewRegistered(cmd.Email, cmd.Name, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	token, session, err := s.authService.IssueToken(ctx, newUser.ID(), false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	s.logger.Info("User registered successfully",
		zap.String("user_id", newUser.ID().String()),
	)

	return &SessionDTO{
		UserID:      newUser.ID(),
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Login authenticates a registered user and opens a session
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (*SessionDTO, error) {
	existing, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, errors.NewDatabaseError("find user", err)
	}

	if err := existing.VerifyPassword(cmd.Password); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := s.userRepo.UpdateLastSeen(ctx, existing.ID()); err != nil {
		s.logger.Warn("Failed to update last seen", zap.Error(err))
	}

	token, session, err := s.authService.IssueToken(ctx, existing.ID(), false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &SessionDTO{
		UserID:      existing.ID(),
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Logout ends the presented session and revokes its token
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.authService.ValidateToken(ctx, token)
	if err != nil {
		return errors.NewUnauthorizedError("Invalid token")
	}

	if err := s.authService.RevokeToken(ctx, claims.ID); err != nil {
		s.logger.Warn("Failed to revoke token", zap.Error(err))
	}

	return s.authService.EndSession(ctx, claims.SessionID)
}
