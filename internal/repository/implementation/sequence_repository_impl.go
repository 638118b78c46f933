package implementation

import (
	"context"
	"errors"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/model"
	"spacenotes-be/internal/repository/contract"
	"spacenotes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SequenceRepositoryImpl struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) contract.SequenceRepository {
	return &SequenceRepositoryImpl{db: db}
}

// Next draws the next number for (spaceSlug, kind). The counter row is read
// FOR UPDATE so two transactions can never compute the same value; counters
// for different spaces or kinds never block each other. Counter rows are
// seeded at space creation, the not-found branch only covers spaces created
// before the counter table existed.
func (r *SequenceRepositoryImpl) Next(ctx context.Context, spaceSlug string, kind entity.SequenceKind) (int64, error) {
	var m model.SpaceSequence
	query := specification.LockForUpdate{}.Apply(r.db.WithContext(ctx)).
		Where("space_slug = ? AND kind = ?", spaceSlug, string(kind))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = model.SpaceSequence{SpaceSlug: spaceSlug, Kind: string(kind), Value: 1}
			if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
				return 0, err
			}
			return m.Value, nil
		}
		return 0, err
	}

	m.Value++
	err := r.db.WithContext(ctx).Model(&model.SpaceSequence{}).
		Where("space_slug = ? AND kind = ?", spaceSlug, string(kind)).
		Update("value", m.Value).Error
	if err != nil {
		return 0, err
	}
	return m.Value, nil
}

// InitSpace seeds both counters at zero so concurrent first allocations
// contend on a row lock instead of racing an insert.
func (r *SequenceRepositoryImpl) InitSpace(ctx context.Context, spaceSlug string) error {
	rows := []model.SpaceSequence{
		{SpaceSlug: spaceSlug, Kind: string(entity.SequenceNote), Value: 0},
		{SpaceSlug: spaceSlug, Kind: string(entity.SequenceAttachment), Value: 0},
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *SequenceRepositoryImpl) ReassignSpace(ctx context.Context, oldSlug, newSlug string) error {
	return r.db.WithContext(ctx).Model(&model.SpaceSequence{}).
		Where("space_slug = ?", oldSlug).
		Update("space_slug", newSlug).Error
}

func (r *SequenceRepositoryImpl) DeleteBySpace(ctx context.Context, spaceSlug string) error {
	return r.db.WithContext(ctx).Where("space_slug = ?", spaceSlug).Delete(&model.SpaceSequence{}).Error
}
