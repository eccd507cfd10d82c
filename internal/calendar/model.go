package calendar

import (
	"time"
)

// Event is the derived calendar entry created when a request reaches full
// approval. It exists so calendar reads never have to scan the request table.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID string    `gorm:"size:20;not null;uniqueIndex" json:"request_id"`
	EventName string    `gorm:"size:200;not null" json:"event_name"`
	Committee string    `gorm:"size:60;not null;index" json:"committee"`
	Venue     string    `gorm:"size:120;not null" json:"venue"`
	EventDate time.Time `gorm:"not null;index" json:"event_date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`   // HH:MM
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "calendar_events"
}
