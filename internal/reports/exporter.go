package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders the request register in a downloadable format.
// Returns content, filename and MIME type.
type Exporter interface {
	Export(format string, rows []RequestReportRow) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(format string, rows []RequestReportRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		return e.exportCSV(timestamp, rows)
	case FormatExcel:
		return e.exportExcel(timestamp, rows)
	case FormatPDF:
		return e.exportPDF(timestamp, rows)
	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

var registerHeaders = []string{"Request ID", "Committee", "Event Name", "Event Date", "Start", "End", "Venue", "Status", "Requester", "Created At"}

func rowValues(r RequestReportRow) []string {
	return []string{
		r.RequestID,
		r.Committee,
		r.EventName,
		r.EventDate.Format("2006-01-02"),
		r.StartTime,
		r.EndTime,
		r.Venue,
		r.Status,
		r.Requester,
		r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (e *exporter) exportCSV(timestamp string, rows []RequestReportRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(registerHeaders); err != nil {
		return nil, "", "", err
	}
	for _, r := range rows {
		if err := w.Write(rowValues(r)); err != nil {
			return nil, "", "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), fmt.Sprintf("request_register_%s.csv", timestamp), "text/csv", nil
}

func (e *exporter) exportExcel(timestamp string, rows []RequestReportRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Requests"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, r := range rows {
		for col, v := range rowValues(r) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), fmt.Sprintf("request_register_%s.xlsx", timestamp),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (e *exporter) exportPDF(timestamp string, rows []RequestReportRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Event Request Register")
	pdf.Ln(10)

	headers := []string{"Request ID", "Committee", "Event", "Date", "Time", "Venue", "Status"}
	widths := []float64{35, 45, 60, 25, 30, 45, 25}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, r.RequestID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Committee, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.EventName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.EventDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.StartTime+"-"+r.EndTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Venue, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), fmt.Sprintf("request_register_%s.pdf", timestamp), "application/pdf", nil
}
