package queue

import (
	"fmt"
	"strings"
	"time"

	"queueflow-backend/models"
)

const numberPad = 3

// NumberPrefix returns the short code embedded in a service's token
// numbers: the configured prefix, or the first two letters of the service
// name upper-cased when none is set.
func NumberPrefix(service models.Service) string {
	if service.Prefix != "" {
		return strings.ToUpper(service.Prefix)
	}
	name := strings.TrimSpace(service.Name)
	if len(name) >= 2 {
		name = name[:2]
	}
	return strings.ToUpper(name)
}

// FormatTokenNumber renders an ordinal as a display number, e.g. GE001.
// Padding is cosmetic: ordinals past 999 render with more digits.
func FormatTokenNumber(prefix string, ordinal int) string {
	return fmt.Sprintf("%s%0*d", prefix, numberPad, ordinal)
}

// DayKey returns the calendar-day component of the numbering scope.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
