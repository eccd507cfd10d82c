package venue

import (
	"time"

	"gorm.io/datatypes"
)

// Venue is a bookable space with its confirmed slots embedded as JSONB.
type Venue struct {
	ID          uint                            `gorm:"primaryKey" json:"id"`
	Name        string                          `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Location    string                          `gorm:"size:255" json:"location"`
	Capacity    int                             `json:"capacity"`
	IsActive    bool                            `gorm:"default:true" json:"is_active"`
	BookedSlots datatypes.JSONSlice[BookedSlot] `gorm:"type:jsonb" json:"booked_slots"`
	Version     int                             `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

func (Venue) TableName() string {
	return "venues"
}

// BookedSlot is one confirmed reservation. Slots are only appended when a
// request reaches full approval, never on submission.
type BookedSlot struct {
	RequestID string    `json:"request_id"`
	EventDate time.Time `json:"event_date"`
	StartTime string    `json:"start_time"` // HH:MM
	EndTime   string    `json:"end_time"`   // HH:MM
}
