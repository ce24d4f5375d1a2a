package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFData is everything the rendered trip document needs.
type PDFData struct {
	Trip          TripRequest
	FlightSummary string
	Itinerary     string
	Activities    []ActivityRecord
	IsEstimated   bool // true when the search API is not configured
}

// GeneratePDFBytes renders the trip document and returns raw bytes
// (stored in Postgres, no filesystem needed).
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripWeaver", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Powered Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Prices are estimates and subject to change. Please verify with providers before booking."
	if data.IsEstimated {
		disclaimer = "ESTIMATED PRICES — search API not configured. This is NOT a booking confirmation. Verify all prices before booking."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s -> %s", data.Trip.Origin, data.Trip.Destination))
	row("Dates", fmt.Sprintf("%s - %s",
		data.Trip.StartDate.Format("02 Jan 2006"),
		data.Trip.EndDate.Format("02 Jan 2006")))
	row("Budget", string(data.Trip.Budget))
	if len(data.Trip.Interests) > 0 {
		row("Interests", joinLimited(data.Trip.Interests, 6))
	}
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Flight Prices ─────────────────────────────────────────
	if data.FlightSummary != "" {
		sectionHeader("Flight Prices")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, data.FlightSummary, "", "L", false)
		pdf.Ln(4)
	}

	// ── Activities ────────────────────────────────────────────
	if len(data.Activities) > 0 {
		sectionHeader("Highlights")
		pdf.SetTextColor(40, 40, 40)
		for _, a := range data.Activities {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(170, 6, a.Name, "", 1, "L", false, 0, "")
			detail := a.Context
			if a.HasCoordinates() {
				coords := fmt.Sprintf("%.4f, %.4f", *a.Lat, *a.Lon)
				if detail != "" {
					detail += " · " + coords
				} else {
					detail = coords
				}
			}
			if detail != "" {
				pdf.SetFont("Helvetica", "", 9)
				pdf.SetTextColor(100, 100, 100)
				pdf.CellFormat(170, 5, detail, "", 1, "L", false, 0, "")
				pdf.SetTextColor(40, 40, 40)
			}
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	// ── Itinerary ─────────────────────────────────────────────
	if data.Itinerary != "" {
		sectionHeader("Itinerary")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, data.Itinerary, "", "L", false)
		pdf.Ln(4)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripWeaver AI Travel Planner · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + fmt.Sprintf(" (+%d more)", len(items)-limit)
}
