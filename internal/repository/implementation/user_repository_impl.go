package implementation

import (
	"context"
	"errors"
	"time"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/mapper"
	"spacenotes-be/internal/model"
	"spacenotes-be/internal/repository/contract"
	"spacenotes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.User{}).Error
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) Exists(ctx context.Context, username string) (bool, error) {
	count, err := r.Count(ctx, specification.ByUsername{Username: username})
	return count > 0, err
}

func (r *UserRepositoryImpl) Rename(ctx context.Context, oldUsername, newUsername string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", oldUsername).
		Update("username", newUsername).Error
}

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, authToken string) error {
	return r.db.WithContext(ctx).Where("auth_token = ?", authToken).Delete(&model.Session{}).Error
}

func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, authToken string) (*entity.Session, error) {
	var m model.Session
	if err := r.db.WithContext(ctx).Where("auth_token = ?", authToken).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Session{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SessionRepositoryImpl) Touch(ctx context.Context, authToken string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).
		Where("auth_token = ?", authToken).
		Update("last_active_at", at).Error
}

func (r *SessionRepositoryImpl) ReassignOwner(ctx context.Context, oldUsername, newUsername string) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).
		Where("username = ?", oldUsername).
		Update("username", newUsername).Error
}

func (r *SessionRepositoryImpl) DeleteByUsername(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.Session{}).Error
}

func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
