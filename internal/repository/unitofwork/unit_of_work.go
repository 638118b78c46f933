package unitofwork

import (
	"context"

	"spacenotes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	SpaceRepository() contract.SpaceRepository
	SpaceMemberRepository() contract.SpaceMemberRepository
	NoteRepository() contract.NoteRepository
	AttachmentRepository() contract.AttachmentRepository
	SequenceRepository() contract.SequenceRepository
}
