// Package pdf projects an aggregated case into a paginated summary
// document.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/subhamroy/case-registry/internal/cases"
)

const (
	topMargin    = 50.0
	bottomMargin = 40.0

	titleSize    = 18.0
	headerSize   = 14.0
	bodySize     = 11.0
	advocateSize = 9.0
)

// document tracks the vertical cursor across pages.
type document struct {
	pdf        *fpdf.Fpdf
	y          float64
	pageHeight float64
}

// RenderCaseSummary renders the case into a multi-page PDF and returns
// the raw bytes.
func RenderCaseSummary(detail *cases.CaseDetail) ([]byte, error) {
	p := fpdf.New("P", "pt", "A4", "")
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	_, pageHeight := p.GetPageSize()

	doc := &document{pdf: p, y: topMargin, pageHeight: pageHeight}

	doc.line(fmt.Sprintf("Case Summary: %s", detail.CaseNo), 50, "B", titleSize)
	doc.y += 15
	filingDate := "N/A"
	if detail.FilingDate != nil {
		filingDate = detail.FilingDate.Format("02/01/2006")
	}
	doc.line(fmt.Sprintf("Filing Date: %s", filingDate), 50, "", bodySize)
	doc.y += 15

	doc.partySection("Petitioner(s)", detail.Petitioners)
	doc.y += 15
	doc.partySection("Respondent(s)", detail.Respondents)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives a safe download filename from the case number. Path
// separators would otherwise break the attachment header and any
// client-side save path.
func Filename(caseNo string) string {
	safe := strings.ReplaceAll(caseNo, "/", "_")
	safe = strings.ReplaceAll(safe, "\\", "_")
	return fmt.Sprintf("case_%s.pdf", safe)
}

func (d *document) partySection(title string, parties []cases.PartyDetail) {
	d.line(title, 50, "B", headerSize)
	for _, p := range parties {
		name := strings.TrimSpace(p.FirstName + " " + p.LastName)
		d.line(fmt.Sprintf("  - %s", name), 55, "", bodySize)
		d.line(fmt.Sprintf("    Advocate(s): %s", advocateNames(p.Advocates)), 60, "", advocateSize)
	}
}

func advocateNames(advocates []cases.AdvocateView) string {
	if len(advocates) == 0 {
		return "N/A"
	}
	names := make([]string, 0, len(advocates))
	for _, a := range advocates {
		names = append(names, strings.TrimSpace(a.FirstName+" "+a.LastName))
	}
	return strings.Join(names, ", ")
}

// line draws one line of text at the cursor, starting a new page first
// when the cursor has passed the bottom margin.
func (d *document) line(text string, x float64, style string, size float64) {
	if d.y > d.pageHeight-bottomMargin {
		d.pdf.AddPage()
		d.y = topMargin
	}
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.Text(x, d.y, text)
	d.y += size + 5
}
