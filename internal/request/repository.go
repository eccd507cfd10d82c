package request

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Query is the storage-level filter built by the service after role scoping.
type Query struct {
	Statuses  []string
	Committee string
	UserID    *uint
	Venue     string
	From      *time.Time // eventDate >= From
	To        *time.Time // eventDate < To
	ExcludeID string     // request_id to skip
}

type Repository interface {
	Create(ctx context.Context, r *Request) error
	FindByRequestID(ctx context.Context, requestID string) (*Request, error)
	FindMany(ctx context.Context, q Query) ([]Request, error)
	CountForYear(ctx context.Context, year int) (int64, error)

	// SaveVersioned persists the request only when its version column still
	// matches the loaded value. Returns false when a concurrent writer won.
	SaveVersioned(ctx context.Context, r *Request) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByRequestID(ctx context.Context, requestID string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindMany(ctx context.Context, q Query) ([]Request, error) {
	db := r.db.WithContext(ctx).Model(&Request{})

	if len(q.Statuses) > 0 {
		db = db.Where("status IN ?", q.Statuses)
	}
	if q.Committee != "" {
		db = db.Where("committee = ?", q.Committee)
	}
	if q.UserID != nil {
		db = db.Where("user_id = ?", *q.UserID)
	}
	if q.Venue != "" {
		db = db.Where("venue = ?", q.Venue)
	}
	if q.From != nil {
		db = db.Where("event_date >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("event_date < ?", *q.To)
	}
	if q.ExcludeID != "" {
		db = db.Where("request_id <> ?", q.ExcludeID)
	}

	var requests []Request
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) CountForYear(ctx context.Context, year int) (int64, error) {
	var count int64
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	err := r.db.WithContext(ctx).Model(&Request{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *repository) SaveVersioned(ctx context.Context, req *Request) (bool, error) {
	oldVersion := req.Version
	req.Version++

	res := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("id = ? AND version = ?", req.ID, oldVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(req)
	if res.Error != nil {
		req.Version = oldVersion
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		req.Version = oldVersion
		return false, nil
	}
	return true, nil
}
