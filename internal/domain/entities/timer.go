package entities

import "time"

// MeetingTimer tracks how long the current meeting has been running
type MeetingTimer struct {
	MeetingID string     `json:"meetingId,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	StoppedAt *time.Time `json:"stoppedAt,omitempty"`
}

// IsRunning checks if the timer was started and not yet stopped
func (t *MeetingTimer) IsRunning() bool {
	return t.StartedAt != nil && t.StoppedAt == nil
}

// Start starts the timer for a meeting, discarding any previous run
func (t *MeetingTimer) Start(meetingID string, now time.Time) {
	t.MeetingID = meetingID
	t.StartedAt = &now
	t.StoppedAt = nil
}

// Stop stops a running timer
func (t *MeetingTimer) Stop(now time.Time) {
	t.StoppedAt = &now
}

// Elapsed returns the running time up to now, or the final duration once stopped
func (t *MeetingTimer) Elapsed(now time.Time) time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	end := now
	if t.StoppedAt != nil {
		end = *t.StoppedAt
	}
	return end.Sub(*t.StartedAt)
}
