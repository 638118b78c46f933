package service

import (
	"context"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/pkg/logger"
	"spacenotes-be/internal/repository/specification"
	"spacenotes-be/internal/repository/unitofwork"
	"spacenotes-be/pkg/fieldschema"
	"spacenotes-be/pkg/identifier"
	pktNats "spacenotes-be/pkg/nats"
)

// IRenameService is the rename cascade engine. A rename rewrites the
// primary row, every structural foreign key, and every embedded reference
// inside note field payloads whose declared field type matches the renamed
// entity kind — all in one transaction.
type IRenameService interface {
	RenameUser(ctx context.Context, oldUsername, newUsername string) (string, error)
	RenameSpace(ctx context.Context, oldSlug, newSlug string) (string, error)
}

type renameService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionCache   *SessionCache
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewRenameService(
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *SessionCache,
	log logger.ILogger,
	eventPublisher *pktNats.Publisher,
) IRenameService {
	return &renameService{
		uowFactory:     uowFactory,
		sessionCache:   sessionCache,
		logger:         log,
		eventPublisher: eventPublisher,
	}
}

// RenameUser rewrites a username everywhere it appears. A user-typed field
// can occur in any space, so the engine locks every space row for the
// duration of the payload scan; note writers take the same lock, which
// closes the race where a new note referencing the old name lands after
// the scan has passed over its space.
func (s *renameService) RenameUser(ctx context.Context, oldUsername, newUsername string) (string, error) {
	oldName, err := identifier.NormalizeUsername(oldUsername)
	if err != nil {
		return "", err
	}
	newName, err := identifier.NormalizeUsername(newUsername)
	if err != nil {
		return "", err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByUsername{Username: oldName},
		specification.LockForUpdate{},
	)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.NewNotFound("user", oldName)
	}

	taken, err := uow.UserRepository().Exists(ctx, newName)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperror.NewConflict("username", newName)
	}

	// Rename barrier: every space row, held until commit.
	spaces, err := uow.SpaceRepository().FindAll(ctx, specification.LockForUpdate{})
	if err != nil {
		return "", err
	}

	// Cheap, certain structural rewrites first; the payload scan last.
	if err := uow.UserRepository().Rename(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.SessionRepository().ReassignOwner(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.SpaceMemberRepository().ReassignUser(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.NoteRepository().ReassignCreator(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.AttachmentRepository().ReassignUploader(ctx, oldName, newName); err != nil {
		return "", err
	}

	rewritten := 0
	for _, space := range spaces {
		userFields := space.Fields.FieldsOfType(fieldschema.TypeUser)
		if len(userFields) == 0 {
			continue
		}
		notes, err := uow.NoteRepository().FindAll(ctx, specification.BySpace{Slug: space.Slug})
		if err != nil {
			return "", err
		}
		for _, note := range notes {
			changed := false
			for _, def := range userFields {
				if v, ok := note.Fields[def.ID]; ok && stringValueEquals(v, oldName) {
					note.Fields[def.ID] = newName
					changed = true
				}
			}
			if changed {
				if err := uow.NoteRepository().Update(ctx, note); err != nil {
					return "", err
				}
				rewritten++
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return "", &apperror.AbortedError{Op: "rename user", Err: err}
	}

	// Cached sessions are keyed by token and still carry the old owner.
	s.sessionCache.Flush()

	s.logger.Info("rename", "username renamed", map[string]interface{}{
		"old":             oldName,
		"new":             newName,
		"notes_rewritten": rewritten,
	})
	s.publish("user.renamed", map[string]interface{}{
		"old_username": oldName,
		"new_username": newName,
	})
	return newName, nil
}

// RenameSpace rewrites a slug through memberships, notes, attachments and
// the allocator's counter rows. Sequence numbers themselves are untouched;
// renaming a space never renumbers its notes.
func (s *renameService) RenameSpace(ctx context.Context, oldSlug, newSlug string) (string, error) {
	oldName, err := identifier.NormalizeSlug(oldSlug)
	if err != nil {
		return "", err
	}
	newName, err := identifier.NormalizeSlug(newSlug)
	if err != nil {
		return "", err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	space, err := uow.SpaceRepository().FindOne(ctx,
		specification.BySlug{Slug: oldName},
		specification.LockForUpdate{},
	)
	if err != nil {
		return "", err
	}
	if space == nil {
		return "", apperror.NewNotFound("space", oldName)
	}

	taken, err := uow.SpaceRepository().Exists(ctx, newName)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperror.NewConflict("slug", newName)
	}

	if err := uow.SpaceRepository().Rename(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.SpaceMemberRepository().ReassignSpace(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.NoteRepository().ReassignSpace(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.AttachmentRepository().ReassignSpace(ctx, oldName, newName); err != nil {
		return "", err
	}
	if err := uow.SequenceRepository().ReassignSpace(ctx, oldName, newName); err != nil {
		return "", err
	}

	if err := uow.Commit(); err != nil {
		return "", &apperror.AbortedError{Op: "rename space", Err: err}
	}

	s.logger.Info("rename", "space renamed", map[string]interface{}{
		"old": oldName,
		"new": newName,
	})
	s.publish("space.renamed", map[string]interface{}{
		"old_slug": oldName,
		"new_slug": newName,
	})
	return newName, nil
}

func (s *renameService) publish(eventType string, data map[string]interface{}) {
	publishEvent(s.eventPublisher, s.logger, "rename", eventType, data)
}
