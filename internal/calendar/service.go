package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidPeriod = errors.New("invalid calendar period")

type Service interface {
	// RecordApproved inserts the derived calendar entry for a fully approved
	// request. Idempotent per request id.
	RecordApproved(ctx context.Context, requestID, eventName, committee, venueName string, eventDate time.Time, startTime, endTime string) error

	// EventsForMonth lists events in a YYYY-MM month.
	EventsForMonth(ctx context.Context, month string) ([]Event, error)

	// EventsForDate lists events on a YYYY-MM-DD day.
	EventsForDate(ctx context.Context, date string) ([]Event, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RecordApproved(ctx context.Context, requestID, eventName, committee, venueName string, eventDate time.Time, startTime, endTime string) error {
	_, err := s.repo.FindByRequestID(ctx, requestID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	event := &Event{
		RequestID: requestID,
		EventName: eventName,
		Committee: committee,
		Venue:     venueName,
		EventDate: eventDate,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return err
	}
	fmt.Printf("✅ Calendar entry created for %s (%s)\n", requestID, eventName)
	return nil
}

func (s *service) EventsForMonth(ctx context.Context, month string) ([]Event, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, ErrInvalidPeriod
	}
	to := from.AddDate(0, 1, 0)
	return s.repo.FindInRange(ctx, from, to)
}

func (s *service) EventsForDate(ctx context.Context, date string) ([]Event, error) {
	from, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidPeriod
	}
	to := from.AddDate(0, 0, 1)
	return s.repo.FindInRange(ctx, from, to)
}
