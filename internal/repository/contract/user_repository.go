package contract

import (
	"context"
	"time"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, username string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Exists(ctx context.Context, username string) (bool, error)

	// Rename updates the username primary key in place. Dependent rows are
	// the cascade engine's responsibility, not GORM association magic.
	Rename(ctx context.Context, oldUsername, newUsername string) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, authToken string) error
	FindByToken(ctx context.Context, authToken string) (*entity.Session, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Touch records session activity.
	Touch(ctx context.Context, authToken string, at time.Time) error

	// ReassignOwner rewrites the owning username across all sessions
	// (username rename cascade).
	ReassignOwner(ctx context.Context, oldUsername, newUsername string) error

	// DeleteByUsername removes all sessions of one user (user delete cascade).
	DeleteByUsername(ctx context.Context, username string) error

	// DeleteExpired purges sessions whose expiry passed before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
