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

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m, err := r.mapper.ToModel(note)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*note = *e
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m, err := r.mapper.ToModel(note)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*note = *e
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, spaceSlug string, number int64) error {
	return r.db.WithContext(ctx).
		Where("space_slug = ? AND number = ?", spaceSlug, number).
		Delete(&model.Note{}).Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NoteRepositoryImpl) ReassignCreator(ctx context.Context, oldUsername, newUsername string) error {
	return r.db.WithContext(ctx).Model(&model.Note{}).
		Where("created_by = ?", oldUsername).
		Update("created_by", newUsername).Error
}

func (r *NoteRepositoryImpl) ReassignSpace(ctx context.Context, oldSlug, newSlug string) error {
	return r.db.WithContext(ctx).Model(&model.Note{}).
		Where("space_slug = ?", oldSlug).
		Update("space_slug", newSlug).Error
}

func (r *NoteRepositoryImpl) DeleteBySpace(ctx context.Context, spaceSlug string) error {
	return r.db.WithContext(ctx).Where("space_slug = ?", spaceSlug).Delete(&model.Note{}).Error
}
