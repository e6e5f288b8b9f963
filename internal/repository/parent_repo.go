package repository

import (
	"context"
	"errors"
	"time"

	"learnbrightly/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ParentRepository interface {
	Create(ctx context.Context, parent *entity.Parent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Parent, error)
	FindByEmail(ctx context.Context, email string) (*entity.Parent, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, parent *entity.Parent) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	VerifyEmail(ctx context.Context, id uuid.UUID) error
	UpdateReadingPreferences(ctx context.Context, id uuid.UUID, prefs datatypes.JSON) (bool, error)
	UpdateNotificationSettings(ctx context.Context, id uuid.UUID, settings datatypes.JSON) (bool, error)
	UpdateChildren(ctx context.Context, id uuid.UUID, children datatypes.JSON) error
}

type parentRepository struct {
	db *gorm.DB
}

func NewParentRepository(db *gorm.DB) ParentRepository {
	return &parentRepository{db: db}
}

func (r *parentRepository) Create(ctx context.Context, parent *entity.Parent) error {
	return r.db.WithContext(ctx).Create(parent).Error
}

func (r *parentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Parent, error) {
	var parent entity.Parent
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&parent).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepository) FindByEmail(ctx context.Context, email string) (*entity.Parent, error) {
	var parent entity.Parent
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&parent).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Parent{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *parentRepository) Update(ctx context.Context, parent *entity.Parent) error {
	return r.db.WithContext(ctx).Save(parent).Error
}

func (r *parentRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Parent{}).
		Where("id = ?", id).
		Update("last_login", &at).
		Error
}

func (r *parentRepository) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Parent{}).
		Where("id = ?", id).
		Update("email_verified", true).
		Error
}

func (r *parentRepository) UpdateReadingPreferences(ctx context.Context, id uuid.UUID, prefs datatypes.JSON) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Parent{}).
		Where("id = ?", id).
		Update("reading_preferences", prefs)
	return result.RowsAffected > 0, result.Error
}

func (r *parentRepository) UpdateNotificationSettings(ctx context.Context, id uuid.UUID, settings datatypes.JSON) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Parent{}).
		Where("id = ?", id).
		Update("notification_settings", settings)
	return result.RowsAffected > 0, result.Error
}

func (r *parentRepository) UpdateChildren(ctx context.Context, id uuid.UUID, children datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&entity.Parent{}).
		Where("id = ?", id).
		Update("children", children).
		Error
}
