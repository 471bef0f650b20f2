package entities

import "time"

// Clock is the facilitator-facing current time in the configured zone
type Clock struct {
	Full      string `json:"full"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

// NewClock formats t for display
func NewClock(t time.Time) Clock {
	return Clock{
		Full:      t.Format(TimeLayout),
		Time:      t.Format("15:04:05"),
		Date:      t.Format("2006-01-02"),
		Timestamp: t.UnixMilli(),
	}
}
