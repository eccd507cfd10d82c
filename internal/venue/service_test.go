package venue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	venues map[string]*Venue
	// when > 0, SaveVersioned reports a lost race this many times
	contended int
}

func newFakeRepo(names ...string) *fakeRepo {
	r := &fakeRepo{venues: map[string]*Venue{}}
	for i, n := range names {
		r.venues[n] = &Venue{ID: uint(i + 1), Name: n, IsActive: true}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, v *Venue) error {
	r.venues[v.Name] = v
	return nil
}

func (r *fakeRepo) FindByName(_ context.Context, name string) (*Venue, error) {
	v, ok := r.venues[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeRepo) FindAll(_ context.Context) ([]Venue, error) {
	var out []Venue
	for _, v := range r.venues {
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeRepo) SaveVersioned(_ context.Context, v *Venue) (bool, error) {
	if r.contended > 0 {
		r.contended--
		return false, nil
	}
	stored, ok := r.venues[v.Name]
	if !ok || stored.Version != v.Version {
		return false, nil
	}
	v.Version++
	cp := *v
	r.venues[v.Name] = &cp
	return true, nil
}

func eventDate() time.Time {
	return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
}

func TestBookAndOverlap(t *testing.T) {
	repo := newFakeRepo("Main Auditorium")
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.Book(ctx, "Main Auditorium", eventDate(), "09:00", "12:00", "REQ-2026-000001")
	assert.NoError(t, err)

	overlap, err := svc.HasOverlap(ctx, "Main Auditorium", eventDate(), "10:00", "11:00", "")
	assert.NoError(t, err)
	assert.True(t, overlap)

	// The booking request's own slot is excluded.
	overlap, err = svc.HasOverlap(ctx, "Main Auditorium", eventDate(), "10:00", "11:00", "REQ-2026-000001")
	assert.NoError(t, err)
	assert.False(t, overlap)

	// Different day, no overlap.
	overlap, err = svc.HasOverlap(ctx, "Main Auditorium", eventDate().AddDate(0, 0, 1), "10:00", "11:00", "")
	assert.NoError(t, err)
	assert.False(t, overlap)

	// Back-to-back slot books fine.
	err = svc.Book(ctx, "Main Auditorium", eventDate(), "12:00", "14:00", "REQ-2026-000002")
	assert.NoError(t, err)
}

func TestBookRejectsOverlappingSlot(t *testing.T) {
	repo := newFakeRepo("Seminar Hall A")
	svc := NewService(repo)
	ctx := context.Background()

	assert.NoError(t, svc.Book(ctx, "Seminar Hall A", eventDate(), "09:00", "12:00", "REQ-2026-000001"))

	err := svc.Book(ctx, "Seminar Hall A", eventDate(), "11:00", "13:00", "REQ-2026-000002")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookIsIdempotentPerRequest(t *testing.T) {
	repo := newFakeRepo("Seminar Hall A")
	svc := NewService(repo)
	ctx := context.Background()

	assert.NoError(t, svc.Book(ctx, "Seminar Hall A", eventDate(), "09:00", "12:00", "REQ-2026-000001"))
	assert.NoError(t, svc.Book(ctx, "Seminar Hall A", eventDate(), "09:00", "12:00", "REQ-2026-000001"))

	v, err := repo.FindByName(ctx, "Seminar Hall A")
	assert.NoError(t, err)
	assert.Len(t, v.BookedSlots, 1)
}

func TestBookRetriesOnContention(t *testing.T) {
	repo := newFakeRepo("Conference Room")
	repo.contended = 2
	svc := NewService(repo)

	err := svc.Book(context.Background(), "Conference Room", eventDate(), "09:00", "10:00", "REQ-2026-000003")
	assert.NoError(t, err)
}

func TestBookCreatesVenueLazily(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.Book(ctx, "Robotics Lab", eventDate(), "09:00", "10:00", "REQ-2026-000001")
	assert.NoError(t, err)

	v, err := repo.FindByName(ctx, "Robotics Lab")
	assert.NoError(t, err)
	assert.Len(t, v.BookedSlots, 1)
}

func TestHasOverlapUnknownVenue(t *testing.T) {
	svc := NewService(newFakeRepo())
	overlap, err := svc.HasOverlap(context.Background(), "Nowhere", eventDate(), "09:00", "10:00", "")
	assert.NoError(t, err)
	assert.False(t, overlap)
}
