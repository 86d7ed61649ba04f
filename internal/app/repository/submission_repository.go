package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
)

// SubmissionRepository records the outcome of every checkout attempt.
type SubmissionRepository interface {
	Create(submission *model.OrderSubmission) error
	List(limit, offset int) ([]model.OrderSubmission, int64, error)
	FindRecent(since time.Time) ([]model.OrderSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.OrderSubmission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) List(limit, offset int) ([]model.OrderSubmission, int64, error) {
	var submissions []model.OrderSubmission
	var total int64

	if err := r.db.Model(&model.OrderSubmission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) FindRecent(since time.Time) ([]model.OrderSubmission, error) {
	var submissions []model.OrderSubmission
	err := r.db.Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}
