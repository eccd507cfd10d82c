package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleRows() []RequestReportRow {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return []RequestReportRow{
		{
			RequestID: "REQ-2026-000001",
			Committee: "GDG Student Club",
			EventName: "DevFest On Campus",
			EventDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "17:00",
			Venue:     "Main Auditorium",
			Status:    "approved",
			Requester: "Ravi Student",
			CreatedAt: created,
		},
		{
			RequestID: "REQ-2026-000002",
			Committee: "Synapse Club",
			EventName: "Hack Night",
			EventDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			StartTime: "18:00",
			EndTime:   "22:00",
			Venue:     "Seminar Hall A",
			Status:    "rejected",
			Requester: "Maya Student",
			CreatedAt: created,
		},
	}
}

func TestExportCSV(t *testing.T) {
	content, filename, mimeType, err := NewExporter().Export(FormatCSV, sampleRows())
	assert.NoError(t, err)
	assert.Contains(t, filename, "request_register_")
	assert.Equal(t, "text/csv", mimeType)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, registerHeaders, records[0])
	assert.Equal(t, "REQ-2026-000001", records[1][0])
	assert.Equal(t, "2026-03-14", records[1][3])
}

func TestExportExcel(t *testing.T) {
	content, filename, mimeType, err := NewExporter().Export(FormatExcel, sampleRows())
	assert.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", mimeType)
	assert.NotEmpty(t, content)
}

func TestExportPDF(t *testing.T) {
	content, filename, mimeType, err := NewExporter().Export(FormatPDF, sampleRows())
	assert.NoError(t, err)
	assert.Contains(t, filename, ".pdf")
	assert.Equal(t, "application/pdf", mimeType)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestExportUnknownFormat(t *testing.T) {
	_, _, _, err := NewExporter().Export("docx", sampleRows())
	assert.Error(t, err)
}
