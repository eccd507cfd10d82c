package notification

import (
	"time"
)

// Delivery states for a notification log row.
const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Message is the payload published to the notification topic.
type Message struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// NotificationLog records every outbound message and its delivery outcome.
type NotificationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Recipient string    `gorm:"size:255;not null;index" json:"recipient"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Status    string    `gorm:"size:20;default:'queued';index" json:"status"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
