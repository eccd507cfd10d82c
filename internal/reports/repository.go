package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	RequestRegister(ctx context.Context, filter ReportFilter) ([]RequestReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RequestRegister(ctx context.Context, filter ReportFilter) ([]RequestReportRow, error) {
	query := r.db.WithContext(ctx).
		Table("requests r").
		Select(`
			r.request_id, r.committee, r.event_name, r.event_date,
			r.start_time, r.end_time, r.venue, r.status, r.created_at,
			u.full_name as requester
		`).
		Joins("LEFT JOIN users u ON r.user_id = u.id")

	if filter.Status != "" {
		query = query.Where("r.status = ?", filter.Status)
	}
	if filter.Committee != "" {
		query = query.Where("r.committee = ?", filter.Committee)
	}
	if filter.From != nil {
		query = query.Where("r.event_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("r.event_date < ?", *filter.To)
	}

	var rows []RequestReportRow
	err := query.Order("r.created_at DESC").Scan(&rows).Error
	return rows, err
}
