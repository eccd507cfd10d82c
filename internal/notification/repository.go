package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, log *NotificationLog) error
	Update(ctx context.Context, log *NotificationLog) error
	FindByRecipient(ctx context.Context, recipient string, limit int) ([]NotificationLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) Update(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *repository) FindByRecipient(ctx context.Context, recipient string, limit int) ([]NotificationLog, error) {
	var logs []NotificationLog
	q := r.db.WithContext(ctx).Where("recipient = ?", recipient).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}
