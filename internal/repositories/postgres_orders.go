package repositories

import (
	"context"
	"time"

	"golang-storefront-backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type orderRecordRepository struct {
	db *gorm.DB
}

func NewOrderRecordRepository(db *gorm.DB) OrderRecordRepository {
	return &orderRecordRepository{db: db}
}

func (r *orderRecordRepository) Create(ctx context.Context, record *models.OrderRecord) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	return errors.Wrap(r.db.WithContext(ctx).Create(record).Error, "create order record")
}

func (r *orderRecordRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.OrderRecord, error) {
	var record models.OrderRecord
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *orderRecordRepository) GetBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]models.OrderRecord, error) {
	var records []models.OrderRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}

func (r *orderRecordRepository) UpdateStatus(ctx context.Context, orderNumber, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderRecord{}).
		Where("order_number = ?", orderNumber).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}
