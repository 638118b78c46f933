package service

import (
	"context"
	"time"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/pkg/logger"
	"spacenotes-be/internal/repository/specification"
	"spacenotes-be/internal/repository/unitofwork"
	"spacenotes-be/pkg/identifier"
	pktNats "spacenotes-be/pkg/nats"

	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Create(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Get(ctx context.Context, username string) (*dto.UserResponse, error)
	Rename(ctx context.Context, oldUsername, newUsername string) (*dto.RenameUserResponse, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	renames        IRenameService
	guard          *IntegrityGuard
	sessionCache   *SessionCache
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	renames IRenameService,
	guard *IntegrityGuard,
	sessionCache *SessionCache,
	log logger.ILogger,
	eventPublisher *pktNats.Publisher,
) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		renames:        renames,
		guard:          guard,
		sessionCache:   sessionCache,
		logger:         log,
		eventPublisher: eventPublisher,
	}
}

func (s *userService) Create(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	username, err := identifier.NormalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	taken, err := uow.UserRepository().Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewConflict("username", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	publishEvent(s.eventPublisher, s.logger, "user", "user.created", map[string]interface{}{
		"username": user.Username,
	})
	return &dto.RegisterResponse{
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	username, err := identifier.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound("user", username)
	}
	return &dto.UserResponse{
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) Rename(ctx context.Context, oldUsername, newUsername string) (*dto.RenameUserResponse, error) {
	renamed, err := s.renames.RenameUser(ctx, oldUsername, newUsername)
	if err != nil {
		return nil, err
	}
	return &dto.RenameUserResponse{Username: renamed}, nil
}

// Delete removes a user and cascades to their sessions only. Memberships,
// authored notes, uploaded attachments and embedded references all
// restrict: authorship history is never silently erased.
func (s *userService) Delete(ctx context.Context, username string) error {
	username, err := identifier.NormalizeUsername(username)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByUsername{Username: username},
		specification.LockForUpdate{},
	)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFound("user", username)
	}

	if err := s.guard.CanDeleteUser(ctx, uow, username); err != nil {
		return err
	}

	if err := uow.SessionRepository().DeleteByUsername(ctx, username); err != nil {
		return err
	}
	if err := uow.UserRepository().Delete(ctx, username); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return &apperror.AbortedError{Op: "delete user", Err: err}
	}

	s.sessionCache.Flush()
	publishEvent(s.eventPublisher, s.logger, "user", "user.deleted", map[string]interface{}{
		"username": username,
	})
	return nil
}
