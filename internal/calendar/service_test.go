package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	events []Event
}

func (f *fakeRepo) Create(_ context.Context, event *Event) error {
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeRepo) FindByRequestID(_ context.Context, requestID string) (*Event, error) {
	for i := range f.events {
		if f.events[i].RequestID == requestID {
			return &f.events[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindInRange(_ context.Context, from, to time.Time) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if !e.EventDate.Before(from) && e.EventDate.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func record(t *testing.T, svc Service, requestID, date string) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	assert.NoError(t, err)
	err = svc.RecordApproved(context.Background(), requestID, "DevFest On Campus", "GDG Student Club", "Main Auditorium", d, "09:00", "17:00")
	assert.NoError(t, err)
}

func TestRecordApprovedIsIdempotent(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	record(t, svc, "REQ-2026-000001", "2026-03-14")
	record(t, svc, "REQ-2026-000001", "2026-03-14")

	assert.Len(t, repo.events, 1)
	assert.Equal(t, "REQ-2026-000001", repo.events[0].RequestID)
}

func TestEventsForMonth(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	record(t, svc, "REQ-2026-000001", "2026-03-14")
	record(t, svc, "REQ-2026-000002", "2026-03-31")
	record(t, svc, "REQ-2026-000003", "2026-04-01")

	events, err := svc.EventsForMonth(context.Background(), "2026-03")
	assert.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = svc.EventsForMonth(context.Background(), "2026-04")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "REQ-2026-000003", events[0].RequestID)

	_, err = svc.EventsForMonth(context.Background(), "March 2026")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestEventsForDate(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	record(t, svc, "REQ-2026-000001", "2026-03-14")
	record(t, svc, "REQ-2026-000002", "2026-03-15")

	events, err := svc.EventsForDate(context.Background(), "2026-03-14")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "REQ-2026-000001", events[0].RequestID)

	events, err = svc.EventsForDate(context.Background(), "2026-03-16")
	assert.NoError(t, err)
	assert.Empty(t, events)

	_, err = svc.EventsForDate(context.Background(), "14-03-2026")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
