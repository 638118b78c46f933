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
	"spacenotes-be/pkg/fieldschema"
	"spacenotes-be/pkg/identifier"
	pktNats "spacenotes-be/pkg/nats"
)

type ISpaceService interface {
	Create(ctx context.Context, req *dto.CreateSpaceRequest) (*dto.CreateSpaceResponse, error)
	Get(ctx context.Context, slug string) (*dto.SpaceResponse, error)
	GetAll(ctx context.Context) ([]*dto.SpaceResponse, error)
	Rename(ctx context.Context, oldSlug, newSlug string) (*dto.RenameSpaceResponse, error)
	UpdateSchema(ctx context.Context, slug string, req *dto.UpdateSchemaRequest) error
	Delete(ctx context.Context, slug string) error

	AddMember(ctx context.Context, slug, username string) error
	RemoveMember(ctx context.Context, slug, username string) error
	GetMembers(ctx context.Context, slug string) ([]*dto.MemberResponse, error)
}

type spaceService struct {
	uowFactory     unitofwork.RepositoryFactory
	renames        IRenameService
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewSpaceService(
	uowFactory unitofwork.RepositoryFactory,
	renames IRenameService,
	log logger.ILogger,
	eventPublisher *pktNats.Publisher,
) ISpaceService {
	return &spaceService{
		uowFactory:     uowFactory,
		renames:        renames,
		logger:         log,
		eventPublisher: eventPublisher,
	}
}

func schemaFromRequest(fields []dto.FieldDefRequest) (fieldschema.Schema, error) {
	schema := make(fieldschema.Schema, 0, len(fields))
	for _, f := range fields {
		schema = append(schema, fieldschema.FieldDef{
			ID:       f.ID,
			Name:     f.Name,
			Type:     fieldschema.FieldType(f.Type),
			Required: f.Required,
		})
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

func schemaToResponse(schema fieldschema.Schema) []dto.FieldDefRequest {
	out := make([]dto.FieldDefRequest, 0, len(schema))
	for _, def := range schema {
		out = append(out, dto.FieldDefRequest{
			ID:       def.ID,
			Name:     def.Name,
			Type:     string(def.Type),
			Required: def.Required,
		})
	}
	return out
}

func (s *spaceService) Create(ctx context.Context, req *dto.CreateSpaceRequest) (*dto.CreateSpaceResponse, error) {
	slug, err := identifier.NormalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	schema, err := schemaFromRequest(req.Fields)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	taken, err := uow.SpaceRepository().Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewConflict("slug", slug)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	space := entity.Space{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Fields:      schema,
		CreatedAt:   time.Now(),
	}
	if err := uow.SpaceRepository().Create(ctx, &space); err != nil {
		return nil, err
	}
	if err := uow.SequenceRepository().InitSpace(ctx, slug); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, &apperror.AbortedError{Op: "create space", Err: err}
	}

	publishEvent(s.eventPublisher, s.logger, "space", "space.created", map[string]interface{}{
		"slug": slug,
	})
	return &dto.CreateSpaceResponse{Slug: slug}, nil
}

func (s *spaceService) Get(ctx context.Context, slug string) (*dto.SpaceResponse, error) {
	slug, err := identifier.NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	space, err := uow.SpaceRepository().FindOne(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, apperror.NewNotFound("space", slug)
	}
	return toSpaceResponse(space), nil
}

func (s *spaceService) GetAll(ctx context.Context) ([]*dto.SpaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	spaces, err := uow.SpaceRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.SpaceResponse, 0, len(spaces))
	for _, space := range spaces {
		result = append(result, toSpaceResponse(space))
	}
	return result, nil
}

func toSpaceResponse(space *entity.Space) *dto.SpaceResponse {
	return &dto.SpaceResponse{
		Slug:        space.Slug,
		Title:       space.Title,
		Description: space.Description,
		Fields:      schemaToResponse(space.Fields),
		CreatedAt:   space.CreatedAt,
		UpdatedAt:   space.UpdatedAt,
	}
}

func (s *spaceService) Rename(ctx context.Context, oldSlug, newSlug string) (*dto.RenameSpaceResponse, error) {
	renamed, err := s.renames.RenameSpace(ctx, oldSlug, newSlug)
	if err != nil {
		return nil, err
	}
	return &dto.RenameSpaceResponse{Slug: renamed}, nil
}

// UpdateSchema replaces the field definition list. Changing the type of a
// field that existing notes may already populate is rejected; payload
// migrations are not supported.
func (s *spaceService) UpdateSchema(ctx context.Context, slug string, req *dto.UpdateSchemaRequest) error {
	slug, err := identifier.NormalizeSlug(slug)
	if err != nil {
		return err
	}
	schema, err := schemaFromRequest(req.Fields)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	space, err := uow.SpaceRepository().FindOne(ctx,
		specification.BySlug{Slug: slug},
		specification.LockForUpdate{},
	)
	if err != nil {
		return err
	}
	if space == nil {
		return apperror.NewNotFound("space", slug)
	}

	noteCount, err := uow.NoteRepository().Count(ctx, specification.BySpace{Slug: slug})
	if err != nil {
		return err
	}
	if noteCount > 0 {
		for _, def := range schema {
			if old, ok := space.Fields.Field(def.ID); ok && old.Type != def.Type {
				return apperror.NewConflict("field_type", def.ID)
			}
		}
	}

	now := time.Now()
	space.Fields = schema
	space.UpdatedAt = &now
	if err := uow.SpaceRepository().Update(ctx, space); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return &apperror.AbortedError{Op: "update schema", Err: err}
	}
	return nil
}

// Delete cascades to memberships, notes, attachments and the allocator
// counters of the space.
func (s *spaceService) Delete(ctx context.Context, slug string) error {
	slug, err := identifier.NormalizeSlug(slug)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	space, err := uow.SpaceRepository().FindOne(ctx,
		specification.BySlug{Slug: slug},
		specification.LockForUpdate{},
	)
	if err != nil {
		return err
	}
	if space == nil {
		return apperror.NewNotFound("space", slug)
	}

	if err := uow.SpaceMemberRepository().DeleteBySpace(ctx, slug); err != nil {
		return err
	}
	if err := uow.NoteRepository().DeleteBySpace(ctx, slug); err != nil {
		return err
	}
	if err := uow.AttachmentRepository().DeleteBySpace(ctx, slug); err != nil {
		return err
	}
	if err := uow.SequenceRepository().DeleteBySpace(ctx, slug); err != nil {
		return err
	}
	if err := uow.SpaceRepository().Delete(ctx, slug); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return &apperror.AbortedError{Op: "delete space", Err: err}
	}

	publishEvent(s.eventPublisher, s.logger, "space", "space.deleted", map[string]interface{}{
		"slug": slug,
	})
	return nil
}

func (s *spaceService) AddMember(ctx context.Context, slug, username string) error {
	slug, err := identifier.NormalizeSlug(slug)
	if err != nil {
		return err
	}
	username, err = identifier.NormalizeUsername(username)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	spaceExists, err := uow.SpaceRepository().Exists(ctx, slug)
	if err != nil {
		return err
	}
	if !spaceExists {
		return apperror.NewNotFound("space", slug)
	}
	userExists, err := uow.UserRepository().Exists(ctx, username)
	if err != nil {
		return err
	}
	if !userExists {
		return apperror.NewNotFound("user", username)
	}
	already, err := uow.SpaceMemberRepository().Exists(ctx, slug, username)
	if err != nil {
		return err
	}
	if already {
		return apperror.NewConflict("space_membership", username)
	}

	member := entity.SpaceMember{
		SpaceSlug: slug,
		Username:  username,
		AddedAt:   time.Now(),
	}
	return uow.SpaceMemberRepository().Add(ctx, &member)
}

func (s *spaceService) RemoveMember(ctx context.Context, slug, username string) error {
	slug, err := identifier.NormalizeSlug(slug)
	if err != nil {
		return err
	}
	username, err = identifier.NormalizeUsername(username)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	exists, err := uow.SpaceMemberRepository().Exists(ctx, slug, username)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("space_membership", username)
	}
	return uow.SpaceMemberRepository().Remove(ctx, slug, username)
}

func (s *spaceService) GetMembers(ctx context.Context, slug string) ([]*dto.MemberResponse, error) {
	slug, err := identifier.NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	spaceExists, err := uow.SpaceRepository().Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !spaceExists {
		return nil, apperror.NewNotFound("space", slug)
	}
	members, err := uow.SpaceMemberRepository().FindAll(ctx,
		specification.BySpace{Slug: slug},
		specification.OrderBy{Field: "added_at"},
	)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, &dto.MemberResponse{
			Username: m.Username,
			AddedAt:  m.AddedAt,
		})
	}
	return result, nil
}
