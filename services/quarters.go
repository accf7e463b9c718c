package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/opladen-thuis/backend/models"
)

// QuarterOf derives the (year, quarter) key from a session date.
// Q1 = Jan-Mar ... Q4 = Oct-Dec.
func QuarterOf(date string) (year, quarter int, ok bool) {
	d, err := time.Parse(DateFormat, date)
	if err != nil {
		return 0, 0, false
	}
	return d.Year(), (int(d.Month())-1)/3 + 1, true
}

// CurrentQuarter returns the (year, quarter) key for the given moment.
func CurrentQuarter(now time.Time) (year, quarter int) {
	return now.Year(), (int(now.Month())-1)/3 + 1
}

// QuarterLabel formats a quarter key for display, e.g. "Q3 2025".
func QuarterLabel(year, quarter int) string {
	return fmt.Sprintf("Q%d %d", quarter, year)
}

// Summarize groups sessions by calendar quarter, ascending by (year,
// quarter). Running totals are re-rounded to 2 decimals after every
// accumulation step. That cumulative rounding reproduces the totals users
// have seen historically; do not replace it with a single final rounding.
// Sessions with an unparseable date are skipped.
func Summarize(sessions []models.Session) []models.QuarterSummary {
	type key struct{ year, quarter int }
	buckets := make(map[key]*models.QuarterSummary)

	for _, session := range sessions {
		year, quarter, ok := QuarterOf(session.Date)
		if !ok {
			continue
		}
		k := key{year, quarter}
		summary, exists := buckets[k]
		if !exists {
			summary = &models.QuarterSummary{
				Year:    year,
				Quarter: quarter,
				Label:   QuarterLabel(year, quarter),
			}
			buckets[k] = summary
		}
		summary.SessionCount++
		summary.TotalEnergyKWh = Round2(summary.TotalEnergyKWh + session.EnergyKWh)
		summary.TotalAmount = Round2(summary.TotalAmount + session.Amount)
	}

	summaries := make([]models.QuarterSummary, 0, len(buckets))
	for _, summary := range buckets {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year < summaries[j].Year
		}
		return summaries[i].Quarter < summaries[j].Quarter
	})
	return summaries
}

// GrandTotal sums the per-quarter totals. Unlike the quarter buckets this
// rounds once at the end; the asymmetry is intentional and kept.
func GrandTotal(summaries []models.QuarterSummary) models.QuarterSummary {
	total := models.QuarterSummary{Label: "Totaal"}
	for _, summary := range summaries {
		total.SessionCount += summary.SessionCount
		total.TotalEnergyKWh += summary.TotalEnergyKWh
		total.TotalAmount += summary.TotalAmount
	}
	total.TotalEnergyKWh = Round2(total.TotalEnergyKWh)
	total.TotalAmount = Round2(total.TotalAmount)
	return total
}

// MarkCurrent flags the summary matching the (year, quarter) of now.
func MarkCurrent(summaries []models.QuarterSummary, now time.Time) {
	year, quarter := CurrentQuarter(now)
	for i := range summaries {
		summaries[i].Current = summaries[i].Year == year && summaries[i].Quarter == quarter
	}
}
