package core

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// JST is the reference timezone; every parsed deadline is expressed in it
// regardless of the locale of the source text.
var JST = loadJST()

func loadJST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Tokyo"); err == nil {
		return loc
	}
	return time.FixedZone("JST", 9*60*60)
}

type (
	// Assignment is one dashboard timeline item, scraped fresh per scan and
	// discarded after it. It has no identity beyond its field values.
	Assignment struct {
		Label string
		Link  string    // detail page URL; empty when the item has no anchor
		Due   null.Time // invalid when the due text could not be parsed
	}

	// NotifyService delivers a deadline summary for at-risk assignments.
	// Implementations log delivery failures themselves; a failed delivery
	// never invalidates the scan that produced the alerts.
	NotifyService interface {
		SendDeadlineAlerts(alerts []Assignment)
	}
)

// HoursLeft reports the whole hours remaining until the assignment is due,
// rounded down. Negative once overdue.
func (a Assignment) HoursLeft(now time.Time) int {
	if !a.Due.Valid {
		return 0
	}
	left := a.Due.Time.Sub(now)
	h := left / time.Hour
	if left%time.Hour < 0 {
		h-- // floor, not truncation
	}
	return int(h)
}
