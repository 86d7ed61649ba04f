package repository

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
)

// CartRepository persists the serialized line collection for each cart key.
type CartRepository interface {
	Load(cartKey string) ([]model.CartLine, error)
	Save(cartKey string, lines []model.CartLine) error
	Delete(cartKey string) error
	DeleteStale(olderThan time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Load returns the stored lines for a cart key. A missing record or a
// corrupt payload both yield an empty cart; corruption is logged and the
// broken record dropped so the key starts clean.
func (r *cartRepository) Load(cartKey string) ([]model.CartLine, error) {
	var record model.CartRecord
	if err := r.db.Where("cart_key = ?", cartKey).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.CartLine{}, nil
		}
		return nil, err
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(record.Payload), &lines); err != nil {
		logger.Warn("discarding corrupt cart payload", map[string]interface{}{
			"cart_key": cartKey,
			"error":    err.Error(),
		})
		if delErr := r.Delete(cartKey); delErr != nil {
			logger.Error("failed to delete corrupt cart record", delErr, map[string]interface{}{
				"cart_key": cartKey,
			})
		}
		return []model.CartLine{}, nil
	}
	if lines == nil {
		lines = []model.CartLine{}
	}

	return lines, nil
}

// Save upserts the full line collection for a cart key.
func (r *cartRepository) Save(cartKey string, lines []model.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	record := model.CartRecord{
		CartKey: cartKey,
		Payload: string(payload),
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
}

func (r *cartRepository) Delete(cartKey string) error {
	return r.db.Where("cart_key = ?", cartKey).Delete(&model.CartRecord{}).Error
}

// DeleteStale purges cart records untouched since the cutoff and reports
// how many were removed.
func (r *cartRepository) DeleteStale(olderThan time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", olderThan).Delete(&model.CartRecord{})
	return result.RowsAffected, result.Error
}
