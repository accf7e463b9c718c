package services

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/opladen-thuis/backend/models"
)

// WriteQuarterReportPDF renders the quarterly overview as an A4 PDF: one row
// per quarter plus the grand total band. Amounts are printed with the
// configured currency code; no conversion is done.
func WriteQuarterReportPDF(w io.Writer, sessions []models.Session, settings models.Settings, now time.Time) error {
	summaries := Summarize(sessions)
	MarkCurrent(summaries, now)
	total := GrandTotal(summaries)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(43, 69, 112)
	pdf.Cell(0, 10, "Opladen Thuis")
	pdf.Ln(9)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, fmt.Sprintf("Kwartaaloverzicht - %s", now.Format("02-01-2006")))
	pdf.Ln(12)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(43, 69, 112)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(40, 8, "Kwartaal", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Sessies", "1", 0, "R", true, 0, "")
	pdf.CellFormat(50, 8, "Energie (kWh)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(55, 8, fmt.Sprintf("Bedrag (%s)", settings.Currency), "1", 0, "R", true, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, summary := range summaries {
		pdf.SetFillColor(240, 244, 250)
		label := summary.Label
		if summary.Current {
			label += " (huidig)"
		}
		pdf.CellFormat(40, 7, label, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", summary.SessionCount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", summary.TotalEnergyKWh), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(55, 7, fmt.Sprintf("%.2f", summary.TotalAmount), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
		fill = !fill
	}

	// Totals band
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(212, 237, 218)
	pdf.CellFormat(40, 8, total.Label, "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%d", total.SessionCount), "1", 0, "R", true, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", total.TotalEnergyKWh), "1", 0, "R", true, 0, "")
	pdf.CellFormat(55, 8, fmt.Sprintf("%.2f", total.TotalAmount), "1", 0, "R", true, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 5, fmt.Sprintf("Tarief: %.2f %s/kWh - Volledige lading: %.1f kWh",
		settings.TariffPerKWh, settings.Currency, settings.ReferenceCapacityKWh))

	return pdf.Output(w)
}
