package queue

import (
	"testing"
	"time"

	"queueflow-backend/models"
)

func TestNumberPrefix(t *testing.T) {
	cases := []struct {
		name    string
		service models.Service
		want    string
	}{
		{"configured prefix", models.Service{Name: "General Enquiry", Prefix: "GE"}, "GE"},
		{"lowercase prefix upper-cased", models.Service{Name: "General Enquiry", Prefix: "ge"}, "GE"},
		{"derived from name", models.Service{Name: "General Enquiry"}, "GE"},
		{"lowercase name", models.Service{Name: "passport"}, "PA"},
		{"padded name", models.Service{Name: "  Billing  "}, "BI"},
		{"single-letter name", models.Service{Name: "X"}, "X"},
	}
	for _, tt := range cases {
		if got := NumberPrefix(tt.service); got != tt.want {
			t.Errorf("%s: NumberPrefix = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatTokenNumber(t *testing.T) {
	cases := []struct {
		ordinal int
		want    string
	}{
		{1, "GE001"},
		{42, "GE042"},
		{999, "GE999"},
		{1000, "GE1000"},
		{12345, "GE12345"},
	}
	for _, tt := range cases {
		if got := FormatTokenNumber("GE", tt.ordinal); got != tt.want {
			t.Errorf("FormatTokenNumber(GE, %d) = %q, want %q", tt.ordinal, got, tt.want)
		}
	}
}

func TestDayKey(t *testing.T) {
	at := time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC)
	if got := DayKey(at); got != "2025-06-02" {
		t.Errorf("DayKey = %q, want 2025-06-02", got)
	}
}
