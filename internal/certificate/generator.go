package certificate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Step is one entry of the approval timeline rendered on the certificate.
type Step struct {
	Role          string
	ApproverName  string
	Status        string
	Comment       string
	Timestamp     *time.Time
	SignaturePath string
}

// Data carries everything the certificate needs. The caller resolves approver
// names and signature paths up front so generation touches no storage.
type Data struct {
	RequestID          string
	Committee          string
	EventName          string
	Description        string
	EventDate          time.Time
	StartTime          string
	EndTime            string
	Venue              string
	ExpectedAttendance int
	Steps              []Step
}

// Generator renders approval certificates to disk.
type Generator struct {
	outDir string
}

func NewGenerator(outDir string) *Generator {
	return &Generator{outDir: outDir}
}

// Generate writes the approval certificate PDF and returns its path.
// A signature image that is missing or unreadable degrades to a placeholder
// line, never to a failed certificate.
func (g *Generator) Generate(data Data) (string, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create certificate dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Event Request Approval Document", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	writeLine := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 7, value, "", "L", false)
	}

	writeLine("Request ID:", data.RequestID)
	writeLine("Committee:", data.Committee)
	writeLine("Event Name:", data.EventName)
	writeLine("Event Date:", data.EventDate.Format("02 Jan 2006"))
	writeLine("Time:", fmt.Sprintf("%s - %s", data.StartTime, data.EndTime))
	writeLine("Venue:", data.Venue)
	writeLine("Expected Attendance:", fmt.Sprintf("%d", data.ExpectedAttendance))

	description := data.Description
	if strings.TrimSpace(description) == "" {
		description = "-"
	}
	writeLine("Description:", description)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, "Approval Timeline", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, step := range data.Steps {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s: %s", step.Role, step.ApproverName), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", step.Status), "", 1, "L", false, 0, "")

		comment := step.Comment
		if strings.TrimSpace(comment) == "" {
			comment = "-"
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("Comment: %s", comment), "", "L", false)

		timestamp := "Pending"
		if step.Timestamp != nil {
			timestamp = step.Timestamp.Format("02 Jan 2006 15:04")
		}
		pdf.CellFormat(0, 6, fmt.Sprintf("Timestamp: %s", timestamp), "", 1, "L", false, 0, "")

		if step.SignaturePath != "" && fileExists(step.SignaturePath) {
			opts := gofpdf.ImageOptions{ReadDpi: true}
			pdf.ImageOptions(step.SignaturePath, pdf.GetX(), pdf.GetY()+1, 40, 0, true, opts, 0, "")
			if pdf.Err() {
				pdf.ClearError()
				pdf.CellFormat(0, 6, "Signature: [Not available]", "", 1, "L", false, 0, "")
			}
		} else {
			pdf.CellFormat(0, 6, "Signature: [Not available]", "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	outPath := filepath.Join(g.outDir, data.RequestID+".pdf")
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("write certificate: %w", err)
	}
	return outPath, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
