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
	"spacenotes-be/pkg/identifier"
	pktNats "spacenotes-be/pkg/nats"
)

type IAttachmentService interface {
	Create(ctx context.Context, username, spaceSlug string, req *dto.CreateAttachmentRequest) (*dto.CreateAttachmentResponse, error)
	Get(ctx context.Context, spaceSlug string, number int64) (*dto.AttachmentResponse, error)
	GetAll(ctx context.Context, spaceSlug string) ([]*dto.AttachmentResponse, error)
	Delete(ctx context.Context, spaceSlug string, number int64) error
}

type attachmentService struct {
	uowFactory     unitofwork.RepositoryFactory
	guard          *IntegrityGuard
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewAttachmentService(
	uowFactory unitofwork.RepositoryFactory,
	guard *IntegrityGuard,
	log logger.ILogger,
	eventPublisher *pktNats.Publisher,
) IAttachmentService {
	return &attachmentService{
		uowFactory:     uowFactory,
		guard:          guard,
		logger:         log,
		eventPublisher: eventPublisher,
	}
}

func (s *attachmentService) Create(ctx context.Context, username, spaceSlug string, req *dto.CreateAttachmentRequest) (*dto.CreateAttachmentResponse, error) {
	spaceSlug, err := identifier.NormalizeSlug(spaceSlug)
	if err != nil {
		return nil, err
	}
	username, err = identifier.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if req.NoteNumber != nil {
		if _, err := identifier.ValidateNumber(*req.NoteNumber); err != nil {
			return nil, err
		}
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

	uploaderExists, err := uow.UserRepository().Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !uploaderExists {
		return nil, apperror.NewNotFound("user", username)
	}

	if req.NoteNumber != nil {
		note, err := uow.NoteRepository().FindOne(ctx,
			specification.BySpace{Slug: spaceSlug},
			specification.ByNumber{Number: *req.NoteNumber},
		)
		if err != nil {
			return nil, err
		}
		if note == nil {
			return nil, apperror.NewNotFound("note", fmt.Sprintf("%s/%d", spaceSlug, *req.NoteNumber))
		}
	}

	number, err := uow.SequenceRepository().Next(ctx, spaceSlug, entity.SequenceAttachment)
	if err != nil {
		return nil, err
	}

	attachment := entity.Attachment{
		SpaceSlug:  spaceSlug,
		Number:     number,
		NoteNumber: req.NoteNumber,
		UploadedBy: username,
		Filename:   req.Filename,
		Size:       req.Size,
		MimeType:   req.MimeType,
		CreatedAt:  time.Now(),
	}
	if err := uow.AttachmentRepository().Create(ctx, &attachment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, &apperror.AbortedError{Op: "create attachment", Err: err}
	}

	publishEvent(s.eventPublisher, s.logger, "attachment", "attachment.created", map[string]interface{}{
		"space_slug":  spaceSlug,
		"number":      number,
		"uploaded_by": username,
	})
	return &dto.CreateAttachmentResponse{SpaceSlug: spaceSlug, Number: number}, nil
}

func (s *attachmentService) Get(ctx context.Context, spaceSlug string, number int64) (*dto.AttachmentResponse, error) {
	spaceSlug, err := identifier.NormalizeSlug(spaceSlug)
	if err != nil {
		return nil, err
	}
	if _, err := identifier.ValidateNumber(number); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	attachment, err := uow.AttachmentRepository().FindOne(ctx,
		specification.BySpace{Slug: spaceSlug},
		specification.ByNumber{Number: number},
	)
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, apperror.NewNotFound("attachment", fmt.Sprintf("%s/%d", spaceSlug, number))
	}
	return toAttachmentResponse(attachment), nil
}

func (s *attachmentService) GetAll(ctx context.Context, spaceSlug string) ([]*dto.AttachmentResponse, error) {
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
	attachments, err := uow.AttachmentRepository().FindAll(ctx,
		specification.BySpace{Slug: spaceSlug},
		specification.OrderBy{Field: "number"},
	)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		result = append(result, toAttachmentResponse(attachment))
	}
	return result, nil
}

func toAttachmentResponse(attachment *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		SpaceSlug:  attachment.SpaceSlug,
		Number:     attachment.Number,
		NoteNumber: attachment.NoteNumber,
		UploadedBy: attachment.UploadedBy,
		Filename:   attachment.Filename,
		Size:       attachment.Size,
		MimeType:   attachment.MimeType,
		CreatedAt:  attachment.CreatedAt,
	}
}

// Delete refuses while any image field of a note in the space still
// references the attachment number.
func (s *attachmentService) Delete(ctx context.Context, spaceSlug string, number int64) error {
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

	// The space row lock keeps note writers out while references are
	// scanned, so no new reference can appear before the delete commits.
	space, err := uow.SpaceRepository().FindOne(ctx,
		specification.BySlug{Slug: spaceSlug},
		specification.LockForUpdate{},
	)
	if err != nil {
		return err
	}
	if space == nil {
		return apperror.NewNotFound("space", spaceSlug)
	}

	exists, err := uow.AttachmentRepository().Exists(ctx, spaceSlug, number)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("attachment", fmt.Sprintf("%s/%d", spaceSlug, number))
	}

	if err := s.guard.CanDeleteAttachment(ctx, uow, spaceSlug, number); err != nil {
		return err
	}

	if err := uow.AttachmentRepository().Delete(ctx, spaceSlug, number); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return &apperror.AbortedError{Op: "delete attachment", Err: err}
	}

	publishEvent(s.eventPublisher, s.logger, "attachment", "attachment.deleted", map[string]interface{}{
		"space_slug": spaceSlug,
		"number":     number,
	})
	return nil
}
