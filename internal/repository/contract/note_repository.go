package contract

import (
	"context"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, spaceSlug string, number int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Cascade helpers.
	ReassignCreator(ctx context.Context, oldUsername, newUsername string) error
	ReassignSpace(ctx context.Context, oldSlug, newSlug string) error
	DeleteBySpace(ctx context.Context, spaceSlug string) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	Delete(ctx context.Context, spaceSlug string, number int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Exists(ctx context.Context, spaceSlug string, number int64) (bool, error)

	// DetachNote clears the structural note association when the note goes
	// away; the attachment itself survives.
	DetachNote(ctx context.Context, spaceSlug string, noteNumber int64) error

	// Cascade helpers.
	ReassignUploader(ctx context.Context, oldUsername, newUsername string) error
	ReassignSpace(ctx context.Context, oldSlug, newSlug string) error
	DeleteBySpace(ctx context.Context, spaceSlug string) error
}
