package implementation

import (
	"context"
	"errors"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/mapper"
	"spacenotes-be/internal/model"
	"spacenotes-be/internal/repository/contract"
	"spacenotes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttachmentMapper
}

func NewAttachmentRepository(db *gorm.DB) contract.AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entity.Attachment) error {
	m := r.mapper.ToModel(attachment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attachment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, spaceSlug string, number int64) error {
	return r.db.WithContext(ctx).
		Where("space_slug = ? AND number = ?", spaceSlug, number).
		Delete(&model.Attachment{}).Error
}

func (r *AttachmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	var m model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttachmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	var models []*model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AttachmentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Attachment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AttachmentRepositoryImpl) Exists(ctx context.Context, spaceSlug string, number int64) (bool, error) {
	count, err := r.Count(ctx, specification.BySpace{Slug: spaceSlug}, specification.ByNumber{Number: number})
	return count > 0, err
}

func (r *AttachmentRepositoryImpl) DetachNote(ctx context.Context, spaceSlug string, noteNumber int64) error {
	return r.db.WithContext(ctx).Model(&model.Attachment{}).
		Where("space_slug = ? AND note_number = ?", spaceSlug, noteNumber).
		Update("note_number", nil).Error
}

func (r *AttachmentRepositoryImpl) ReassignUploader(ctx context.Context, oldUsername, newUsername string) error {
	return r.db.WithContext(ctx).Model(&model.Attachment{}).
		Where("uploaded_by = ?", oldUsername).
		Update("uploaded_by", newUsername).Error
}

func (r *AttachmentRepositoryImpl) ReassignSpace(ctx context.Context, oldSlug, newSlug string) error {
	return r.db.WithContext(ctx).Model(&model.Attachment{}).
		Where("space_slug = ?", oldSlug).
		Update("space_slug", newSlug).Error
}

func (r *AttachmentRepositoryImpl) DeleteBySpace(ctx context.Context, spaceSlug string) error {
	return r.db.WithContext(ctx).Where("space_slug = ?", spaceSlug).Delete(&model.Attachment{}).Error
}
