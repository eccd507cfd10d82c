package reports

import (
	"time"
)

// Export formats accepted by the register endpoint.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// RequestReportRow is one line of the request register export.
type RequestReportRow struct {
	RequestID string    `json:"request_id"`
	Committee string    `json:"committee"`
	EventName string    `json:"event_name"`
	EventDate time.Time `json:"event_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Venue     string    `json:"venue"`
	Status    string    `json:"status"`
	Requester string    `json:"requester"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportFilter narrows the register query.
type ReportFilter struct {
	Status    string
	Committee string
	From      *time.Time
	To        *time.Time
}
