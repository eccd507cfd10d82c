package venue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSlotTaken         = errors.New("venue already booked for this slot")
	ErrBookingContention = errors.New("venue booking contention, retry")
)

const bookingRetries = 3

type Service interface {
	// HasOverlap reports whether any confirmed slot on the venue intersects
	// the given window on the given date. excludeRequestID ignores the
	// caller's own slot so a re-check after booking stays false.
	HasOverlap(ctx context.Context, venueName string, date time.Time, start, end, excludeRequestID string) (bool, error)

	// Book appends a confirmed slot. Booking is idempotent per request id and
	// atomic under concurrent bookings of the same venue.
	Book(ctx context.Context, venueName string, date time.Time, start, end, requestID string) error

	ListVenues(ctx context.Context) ([]Venue, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (s *service) HasOverlap(ctx context.Context, venueName string, date time.Time, start, end, excludeRequestID string) (bool, error) {
	v, err := s.repo.FindByName(ctx, venueName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown venue means no bookings yet.
			return false, nil
		}
		return false, err
	}

	for _, slot := range v.BookedSlots {
		if excludeRequestID != "" && slot.RequestID == excludeRequestID {
			continue
		}
		if !sameDay(slot.EventDate, date) {
			continue
		}
		overlap, err := TimeOverlap(start, end, slot.StartTime, slot.EndTime)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) Book(ctx context.Context, venueName string, date time.Time, start, end, requestID string) error {
	for attempt := 0; attempt < bookingRetries; attempt++ {
		v, err := s.repo.FindByName(ctx, venueName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Venues are created lazily on first booking.
			v = &Venue{Name: venueName, IsActive: true}
			if err := s.repo.Create(ctx, v); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// Already booked by this request, nothing to do.
		for _, slot := range v.BookedSlots {
			if slot.RequestID == requestID {
				return nil
			}
		}

		for _, slot := range v.BookedSlots {
			if !sameDay(slot.EventDate, date) {
				continue
			}
			overlap, err := TimeOverlap(start, end, slot.StartTime, slot.EndTime)
			if err != nil {
				return err
			}
			if overlap {
				return ErrSlotTaken
			}
		}

		v.BookedSlots = append(v.BookedSlots, BookedSlot{
			RequestID: requestID,
			EventDate: date,
			StartTime: start,
			EndTime:   end,
		})

		ok, err := s.repo.SaveVersioned(ctx, v)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("✅ Venue %s booked for %s (%s-%s) by %s\n", venueName, date.Format("2006-01-02"), start, end, requestID)
			return nil
		}
		// Lost the race, reload and re-check.
	}
	return ErrBookingContention
}

func (s *service) ListVenues(ctx context.Context) ([]Venue, error) {
	return s.repo.FindAll(ctx)
}

// SeedVenues creates the institution's bookable spaces on first boot.
func SeedVenues(repo Repository) {
	seeds := []Venue{
		{Name: "Main Auditorium", Location: "Admin Block, Ground Floor", Capacity: 600, IsActive: true},
		{Name: "Seminar Hall A", Location: "Academic Block 1, Second Floor", Capacity: 150, IsActive: true},
		{Name: "Seminar Hall B", Location: "Academic Block 2, Second Floor", Capacity: 150, IsActive: true},
		{Name: "Open Air Theatre", Location: "Campus Grounds", Capacity: 1000, IsActive: true},
		{Name: "Conference Room", Location: "Admin Block, First Floor", Capacity: 40, IsActive: true},
	}

	ctx := context.Background()
	for _, seed := range seeds {
		_, err := repo.FindByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("❌ Venue seed lookup failed for %s: %v\n", seed.Name, err)
			continue
		}
		if err := repo.Create(ctx, &seed); err != nil {
			fmt.Printf("❌ Failed to seed venue %s: %v\n", seed.Name, err)
			continue
		}
		fmt.Printf("✅ Seeded venue %s\n", seed.Name)
	}
}
