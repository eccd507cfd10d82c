package request

import (
	"time"

	"gorm.io/datatypes"

	"github.com/sreeram023/event-approval-backend/internal/auth"
)

// Request lifecycle states. A request is "pending" until any approver acts,
// "in-review" while moving through the chain, then terminally "approved" or
// "rejected".
const (
	StatusPending  = "pending"
	StatusInReview = "in-review"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Step states share the terminal vocabulary of the request itself.
const (
	StepPending  = "pending"
	StepApproved = "approved"
	StepRejected = "rejected"
)

// ApprovalStep is one slot of the fixed five-step chain. The chain's length
// and order never change after creation; only step status, comment and
// timestamp are mutated, always at the current step.
type ApprovalStep struct {
	ApproverID uint       `json:"approver_id"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	Comment    string     `json:"comment,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// Request is an event-permission request moving through the approval chain.
// Mutated only through the workflow service; never deleted.
type Request struct {
	ID                  uint                              `gorm:"primaryKey" json:"id"`
	RequestID           string                            `gorm:"size:20;not null;uniqueIndex" json:"request_id"` // REQ-2026-000001
	UserID              uint                              `gorm:"not null;index" json:"user_id"`
	Committee           string                            `gorm:"size:60;not null;index" json:"committee"`
	EventName           string                            `gorm:"size:200;not null" json:"event_name"`
	Description         string                            `gorm:"type:text" json:"description"`
	EventDate           time.Time                         `gorm:"not null;index" json:"event_date"`
	StartTime           string                            `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime             string                            `gorm:"size:5;not null" json:"end_time"`   // HH:MM
	Venue               string                            `gorm:"size:120;not null;index" json:"venue"`
	ExpectedAttendance  int                               `json:"expected_attendance"`
	SpecialRequirements string                            `gorm:"type:text" json:"special_requirements"`
	ApprovalChain       datatypes.JSONSlice[ApprovalStep] `gorm:"type:jsonb" json:"approval_chain"`
	CurrentApproverID   *uint                             `gorm:"index" json:"current_approver_id"`
	CurrentStepIndex    *int                              `json:"current_step_index"`
	Status              string                            `gorm:"size:20;not null;index" json:"status"`
	RejectionReason     *string                           `gorm:"size:500" json:"rejection_reason,omitempty"`
	RejectedBy          *uint                             `json:"rejected_by,omitempty"`
	RejectedAt          *time.Time                        `json:"rejected_at,omitempty"`
	ApprovedAt          *time.Time                        `json:"approved_at,omitempty"`
	Version             int                               `gorm:"not null;default:0" json:"-"`
	CreatedAt           time.Time                         `json:"created_at"`
	UpdatedAt           time.Time                         `json:"updated_at"`
}

func (Request) TableName() string {
	return "requests"
}

// IsTerminal reports whether no further chain actions can succeed.
func (r *Request) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// FirstPendingIndex returns the lowest chain index still pending, or -1 when
// the chain is exhausted.
func (r *Request) FirstPendingIndex() int {
	for i, step := range r.ApprovalChain {
		if step.Status == StepPending {
			return i
		}
	}
	return -1
}

// CreateInput carries the requester-supplied event fields.
type CreateInput struct {
	Committee           string `json:"committee"`
	EventName           string `json:"event_name"`
	Description         string `json:"description"`
	EventDate           string `json:"event_date"` // YYYY-MM-DD
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	Venue               string `json:"venue"`
	ExpectedAttendance  int    `json:"expected_attendance"`
	SpecialRequirements string `json:"special_requirements"`
}

// ListFilter narrows the read side. Status accepts raw values plus the
// groupings "pending" (pending + in-review) and "complete" (approved +
// rejected).
type ListFilter struct {
	Status string
	Month  string // YYYY-MM
	UserID *uint  // explicit requester scope, subject to role rules
}

// EnrichedRequest is the list projection with read-side flags attached.
type EnrichedRequest struct {
	Request
	NextApprover      *auth.ApproverSummary `json:"next_approver"`
	DownloadAvailable bool                  `json:"download_available"`
	VenueBooked       bool                  `json:"venue_booked"`
}
