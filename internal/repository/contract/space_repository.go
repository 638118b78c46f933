package contract

import (
	"context"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/repository/specification"
)

type SpaceRepository interface {
	Create(ctx context.Context, space *entity.Space) error
	Update(ctx context.Context, space *entity.Space) error
	Delete(ctx context.Context, slug string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Space, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Exists(ctx context.Context, slug string) (bool, error)

	// Rename updates the slug primary key in place.
	Rename(ctx context.Context, oldSlug, newSlug string) error
}

type SpaceMemberRepository interface {
	Add(ctx context.Context, member *entity.SpaceMember) error
	Remove(ctx context.Context, spaceSlug, username string) error
	Exists(ctx context.Context, spaceSlug, username string) (bool, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SpaceMember, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Cascade helpers: rewrite one side of the composite key, or drop all
	// rows of a deleted space.
	ReassignUser(ctx context.Context, oldUsername, newUsername string) error
	ReassignSpace(ctx context.Context, oldSlug, newSlug string) error
	DeleteBySpace(ctx context.Context, spaceSlug string) error
}

type SequenceRepository interface {
	// Next returns the next number for (spaceSlug, kind), locking the
	// counter row for the remainder of the enclosing transaction. Must be
	// called inside the same transaction as the insert that consumes the
	// number; an abort skips the number permanently.
	Next(ctx context.Context, spaceSlug string, kind entity.SequenceKind) (int64, error)

	// InitSpace seeds both counters at zero when a space is created.
	InitSpace(ctx context.Context, spaceSlug string) error

	ReassignSpace(ctx context.Context, oldSlug, newSlug string) error
	DeleteBySpace(ctx context.Context, spaceSlug string) error
}
