package repository

import (
	"context"
	"errors"
	"time"

	"learnbrightly/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository interface {
	Upsert(ctx context.Context, accountID uuid.UUID, score float64, testedAt time.Time) error
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.DyslexiaScore, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Upsert(ctx context.Context, accountID uuid.UUID, score float64, testedAt time.Time) error {
	row := entity.DyslexiaScore{
		AccountID:    accountID,
		Score:        score,
		LastTestDate: testedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "last_test_date"}),
		}).
		Create(&row).Error
}

func (r *scoreRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.DyslexiaScore, error) {
	var row entity.DyslexiaScore
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
