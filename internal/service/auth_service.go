package service

import (
	"context"
	"errors"
	"time"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/pkg/logger"
	"spacenotes-be/internal/repository/specification"
	"spacenotes-be/internal/repository/unitofwork"
	"spacenotes-be/pkg/identifier"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login when the username/password
// pair does not check out. Deliberately indistinguishable between an
// unknown user and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	CreateSession(ctx context.Context, username string) (*dto.SessionResponse, error)

	// ValidateSession resolves a token to its owning username, or fails
	// with NotFound / SessionExpired.
	ValidateSession(ctx context.Context, authToken string) (string, error)

	Logout(ctx context.Context, authToken string) error

	// PurgeExpiredSessions removes sessions past their expiry; run
	// periodically and implied lazily by ValidateSession.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionCache *SessionCache
	sessionTTL   time.Duration
	logger       logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *SessionCache,
	sessionTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		sessionCache: sessionCache,
		sessionTTL:   sessionTTL,
		logger:       log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	username, err := identifier.NormalizeUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.CreateSession(ctx, username)
}

func (s *authService) CreateSession(ctx context.Context, username string) (*dto.SessionResponse, error) {
	username, err := identifier.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	exists, err := uow.UserRepository().Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NewNotFound("user", username)
	}

	token, err := identifier.NewToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := entity.Session{
		AuthToken:    token,
		Username:     username,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.sessionTTL),
		LastActiveAt: now,
	}
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		AuthToken: session.AuthToken,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) ValidateSession(ctx context.Context, authToken string) (string, error) {
	token, err := identifier.ValidateToken(authToken)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if cached, ok := s.sessionCache.Get(token); ok {
		if now.Before(cached.ExpiresAt) {
			return cached.Username, nil
		}
		s.sessionCache.Delete(token)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindByToken(ctx, token)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", apperror.NewNotFound("session", token)
	}
	if !now.Before(session.ExpiresAt) {
		// Lazy purge: the row grants nothing anymore.
		if err := uow.SessionRepository().Delete(ctx, token); err != nil {
			s.logger.Warn("auth", "failed to purge expired session", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return "", &apperror.SessionExpiredError{Token: token}
	}

	if err := uow.SessionRepository().Touch(ctx, token, now); err != nil {
		return "", err
	}
	s.sessionCache.Set(token, cachedSession{Username: session.Username, ExpiresAt: session.ExpiresAt})
	return session.Username, nil
}

func (s *authService) Logout(ctx context.Context, authToken string) error {
	token, err := identifier.ValidateToken(authToken)
	if err != nil {
		return err
	}
	s.sessionCache.Delete(token)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionRepository().Delete(ctx, token)
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	purged, err := uow.SessionRepository().DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.logger.Info("auth", "purged expired sessions", map[string]interface{}{
			"count": purged,
		})
	}
	return purged, nil
}
