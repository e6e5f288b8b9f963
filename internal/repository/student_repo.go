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

type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	FindByEmail(ctx context.Context, email string) (*entity.Student, error)
	FindByCode(ctx context.Context, code string) (*entity.Student, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, student *entity.Student) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	VerifyEmail(ctx context.Context, id uuid.UUID) error
	UpdateReadingPreferences(ctx context.Context, id uuid.UUID, prefs datatypes.JSON) (bool, error)
	UpdateNotificationSettings(ctx context.Context, id uuid.UUID, settings datatypes.JSON) (bool, error)
	UpdateGuardianName(ctx context.Context, id uuid.UUID, guardianName string) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&student).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByCode(ctx context.Context, code string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).
		Where("student_code = ?", code).
		First(&student).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Where("id = ?", id).
		Update("last_login", &at).
		Error
}

func (r *studentRepository) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Where("id = ?", id).
		Update("email_verified", true).
		Error
}

func (r *studentRepository) UpdateReadingPreferences(ctx context.Context, id uuid.UUID, prefs datatypes.JSON) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Where("id = ?", id).
		Update("reading_preferences", prefs)
	return result.RowsAffected > 0, result.Error
}

func (r *studentRepository) UpdateNotificationSettings(ctx context.Context, id uuid.UUID, settings datatypes.JSON) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Where("id = ?", id).
		Update("notification_settings", settings)
	return result.RowsAffected > 0, result.Error
}

func (r *studentRepository) UpdateGuardianName(ctx context.Context, id uuid.UUID, guardianName string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Where("id = ?", id).
		Update("guardian_name", guardianName).
		Error
}
