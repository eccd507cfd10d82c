package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	FindByRequestID(ctx context.Context, requestID string) (*Event, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]Event, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindByRequestID(ctx context.Context, requestID string) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindInRange(ctx context.Context, from, to time.Time) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("event_date >= ? AND event_date < ?", from, to).
		Order("event_date ASC, start_time ASC").
		Find(&events).Error
	return events, err
}
