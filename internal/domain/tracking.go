package domain

import "time"

// Click is one recorded outbound affiliate visit.
type Click struct {
	ID      string    `json:"id"`
	FirmID  string    `json:"firm_id"`
	Source  string    `json:"source,omitempty"`
	Referer string    `json:"referer,omitempty"`
	At      time.Time `json:"at"`
}

// DayCount is a per-day click total for one firm.
type DayCount struct {
	Day   string `json:"day"` // yyyy-mm-dd, UTC
	Count int64  `json:"count"`
}
