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

type SpaceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SpaceMapper
}

func NewSpaceRepository(db *gorm.DB) contract.SpaceRepository {
	return &SpaceRepositoryImpl{
		db:     db,
		mapper: mapper.NewSpaceMapper(),
	}
}

func (r *SpaceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SpaceRepositoryImpl) Create(ctx context.Context, space *entity.Space) error {
	m, err := r.mapper.ToModel(space)
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
	*space = *e
	return nil
}

func (r *SpaceRepositoryImpl) Update(ctx context.Context, space *entity.Space) error {
	m, err := r.mapper.ToModel(space)
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
	*space = *e
	return nil
}

func (r *SpaceRepositoryImpl) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Space{}).Error
}

func (r *SpaceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error) {
	var m model.Space
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *SpaceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Space, error) {
	var models []*model.Space
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *SpaceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Space{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SpaceRepositoryImpl) Exists(ctx context.Context, slug string) (bool, error) {
	count, err := r.Count(ctx, specification.BySlug{Slug: slug})
	return count > 0, err
}

func (r *SpaceRepositoryImpl) Rename(ctx context.Context, oldSlug, newSlug string) error {
	return r.db.WithContext(ctx).Model(&model.Space{}).
		Where("slug = ?", oldSlug).
		Update("slug", newSlug).Error
}

type SpaceMemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SpaceMemberMapper
}

func NewSpaceMemberRepository(db *gorm.DB) contract.SpaceMemberRepository {
	return &SpaceMemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewSpaceMemberMapper(),
	}
}

func (r *SpaceMemberRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SpaceMemberRepositoryImpl) Add(ctx context.Context, member *entity.SpaceMember) error {
	m := r.mapper.ToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.ToEntity(m)
	return nil
}

func (r *SpaceMemberRepositoryImpl) Remove(ctx context.Context, spaceSlug, username string) error {
	return r.db.WithContext(ctx).
		Where("space_slug = ? AND username = ?", spaceSlug, username).
		Delete(&model.SpaceMember{}).Error
}

func (r *SpaceMemberRepositoryImpl) Exists(ctx context.Context, spaceSlug, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SpaceMember{}).
		Where("space_slug = ? AND username = ?", spaceSlug, username).
		Count(&count).Error
	return count > 0, err
}

func (r *SpaceMemberRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SpaceMember, error) {
	var models []*model.SpaceMember
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SpaceMemberRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SpaceMember{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SpaceMemberRepositoryImpl) ReassignUser(ctx context.Context, oldUsername, newUsername string) error {
	return r.db.WithContext(ctx).Model(&model.SpaceMember{}).
		Where("username = ?", oldUsername).
		Update("username", newUsername).Error
}

func (r *SpaceMemberRepositoryImpl) ReassignSpace(ctx context.Context, oldSlug, newSlug string) error {
	return r.db.WithContext(ctx).Model(&model.SpaceMember{}).
		Where("space_slug = ?", oldSlug).
		Update("space_slug", newSlug).Error
}

func (r *SpaceMemberRepositoryImpl) DeleteBySpace(ctx context.Context, spaceSlug string) error {
	return r.db.WithContext(ctx).Where("space_slug = ?", spaceSlug).Delete(&model.SpaceMember{}).Error
}
