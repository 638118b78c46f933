package service

import (
	"context"
	"fmt"
	"time"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/pkg/logger"
	"spacenotes-be/internal/repository/specification"
	"spacenotes-be/internal/repository/unitofwork"
	"spacenotes-be/pkg/fieldschema"
	"spacenotes-be/pkg/identifier"
	pktNats "spacenotes-be/pkg/nats"
)

type INoteService interface {
	Create(ctx context.Context, username, spaceSlug string, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Get(ctx context.Context, spaceSlug string, number int64) (*dto.NoteResponse, error)
	GetAll(ctx context.Context, spaceSlug string) ([]*dto.NoteResponse, error)
	UpdateFields(ctx context.Context, spaceSlug string, number int64, req *dto.UpdateNoteFieldsRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, spaceSlug string, number int64) error
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	eventPublisher *pktNats.Publisher,
) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		logger:         log,
		eventPublisher: eventPublisher,
	}
}

// validatorFor binds reference resolvers to the repositories of the
// current transaction, so user and attachment lookups see uncommitted
// rows written earlier in the same unit of work.
func validatorFor(uow unitofwork.UnitOfWork, spaceSlug string) *fieldschema.Validator {
	return &fieldschema.Validator{
		Users: func(ctx context.Context, username string) (bool, error) {
			return uow.UserRepository().Exists(ctx, username)
		},
		Attachments: func(ctx context.Context, number int64) (bool, error) {
			return uow.AttachmentRepository().Exists(ctx, spaceSlug, number)
		},
	}
}

func (s *noteService) Create(ctx context.Context, username, spaceSlug string, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	spaceSlug, err := identifier.NormalizeSlug(spaceSlug)
	if err != nil {
		return nil, err
	}
	username, err = identifier.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Lock the space row: a concurrent rename of any referenced user takes
	// the same lock before rewriting payloads, so the two cannot interleave.
	space, err := uow.SpaceRepository().FindOne(ctx,
		specification.BySlug{Slug: spaceSlug},
		specification.LockForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, apperror.NewNotFound("space", spaceSlug)
	}

	creatorExists, err := uow.UserRepository().Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !creatorExists {
		return nil, apperror.NewNotFound("user", username)
	}

	fields, err := validatorFor(uow, spaceSlug).Validate(ctx, space.Fields, req.Fields)
	if err != nil {
		return nil, err
	}

	number, err := uow.SequenceRepository().Next(ctx, spaceSlug, entity.SequenceNote)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note := entity.Note{
		SpaceSlug:  spaceSlug,
		Number:     number,
		CreatedBy:  username,
		CreatedAt:  now,
		ActivityAt: now,
		Fields:     fields,
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, &apperror.AbortedError{Op: "create note", Err: err}
	}

	publishEvent(s.eventPublisher, s.logger, "note", "note.created", map[string]interface{}{
		"space_slug": spaceSlug,
		"number":     number,
		"created_by": username,
	})
	return &dto.CreateNoteResponse{SpaceSlug: spaceSlug, Number: number}, nil
}

func (s *noteService) Get(ctx context.Context, spaceSlug string, number int64) (*dto.NoteResponse, error) {
	spaceSlug, err := identifier.NormalizeSlug(spaceSlug)
	if err != nil {
		return nil, err
	}
	if _, err := identifier.ValidateNumber(number); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.BySpace{Slug: spaceSlug},
		specification.ByNumber{Number: number},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFound("note", fmt.Sprintf("%s/%d", spaceSlug, number))
	}
	return toNoteResponse(note), nil
}

func (s *noteService) GetAll(ctx context.Context, spaceSlug string) ([]*dto.NoteResponse, error) {
	spaceSlug, err := identifier.NormalizeSlug(spaceSlug)
	if err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	spaceExists, err := uow.SpaceRepository().Exists(ctx, spaceSlug)
	if err != nil {
		return nil, err
	}
	if !spaceExists {
		return nil, apperror.NewNotFound("space", spaceSlug)
	}
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.BySpace{Slug: spaceSlug},
		specification.OrderBy{Field: "number"},
	)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, toNoteResponse(note))
	}
	return result, nil
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		SpaceSlug:  note.SpaceSlug,
		Number:     note.Number,
		CreatedBy:  note.CreatedBy,
		CreatedAt:  note.CreatedAt,
		EditedAt:   note.EditedAt,
		ActivityAt: note.ActivityAt,
		Fields:     note.Fields,
	}
}

// UpdateFields merges the submitted fields over the stored payload and
// revalidates the merged result against the current schema. A nil value
// clears the field.
func (s *noteService) UpdateFields(ctx context.Context, spaceSlug string, number int64, req *dto.UpdateNoteFieldsRequest) (*dto.NoteResponse, error) {
	spaceSlug, err := identifier.NormalizeSlug(spaceSlug)
	if err != nil {
		return nil, err
	}
	if _, err := identifier.ValidateNumber(number); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	space, err := uow.SpaceRepository().FindOne(ctx,
		specification.BySlug{Slug: spaceSlug},
		specification.LockForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, apperror.NewNotFound("space", spaceSlug)
	}
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.BySpace{Slug: spaceSlug},
		specification.ByNumber{Number: number},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFound("note", fmt.Sprintf("%s/%d", spaceSlug, number))
	}

	merged := make(map[string]interface{}, len(note.Fields)+len(req.Fields))
	for k, v := range note.Fields {
		merged[k] = v
	}
	for k, v := range req.Fields {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	fields, err := validatorFor(uow, spaceSlug).Validate(ctx, space.Fields, merged)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.Fields = fields
	note.EditedAt = &now
	note.ActivityAt = now
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, &apperror.AbortedError{Op: "update note fields", Err: err}
	}

	publishEvent(s.eventPublisher, s.logger, "note", "note.updated", map[string]interface{}{
		"space_slug": spaceSlug,
		"number":     number,
	})
	return toNoteResponse(note), nil
}

// Delete removes the note and detaches its attachments; the attachments
// themselves stay in the space.
func (s *noteService) Delete(ctx context.Context, spaceSlug string, number int64) error {
	spaceSlug, err := identifier.NormalizeSlug(spaceSlug)
	if err != nil {
		return err
	}
	if _, err := identifier.ValidateNumber(number); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.BySpace{Slug: spaceSlug},
		specification.ByNumber{Number: number},
		specification.LockForUpdate{},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NewNotFound("note", fmt.Sprintf("%s/%d", spaceSlug, number))
	}

	if err := uow.AttachmentRepository().DetachNote(ctx, spaceSlug, number); err != nil {
		return err
	}
	if err := uow.NoteRepository().Delete(ctx, spaceSlug, number); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return &apperror.AbortedError{Op: "delete note", Err: err}
	}

	publishEvent(s.eventPublisher, s.logger, "note", "note.deleted", map[string]interface{}{
		"space_slug": spaceSlug,
		"number":     number,
	})
	return nil
}
