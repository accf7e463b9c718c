package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/opladen-thuis/backend/models"
)

func TestWriteQuarterReportPDF(t *testing.T) {
	sessions := []models.Session{
		{Date: "2025-01-15", EnergyKWh: 18, Amount: 5.04},
		{Date: "2025-07-04", EnergyKWh: 5.94, Amount: 1.66},
	}
	now := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.Local)

	var buf bytes.Buffer
	if err := WriteQuarterReportPDF(&buf, sessions, models.DefaultSettings(), now); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}
}

func TestWriteQuarterReportPDFEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQuarterReportPDF(&buf, nil, models.DefaultSettings(), time.Now()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("expected a report even with no sessions")
	}
}
