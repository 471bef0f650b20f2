package entities

import (
	"fmt"
	"strings"
	"time"
)

// RecordType distinguishes log entries
type RecordType string

const (
	// RecordTypeReaction is the zero value; reaction records carry no type field
	RecordTypeReaction RecordType = ""
	RecordTypeDivider  RecordType = "meeting-divider"
)

// TimeLayout is the wall-clock layout stored in Record.Time
const TimeLayout = "2006-01-02 15:04:05"

// Record is a single entry of the reaction log. Reactions and meeting
// dividers share one shape so the log round-trips through the raw export.
type Record struct {
	Type        RecordType `json:"type,omitempty"`
	Emoji       string     `json:"emoji,omitempty"`
	Name        string     `json:"name,omitempty"`
	Participant string     `json:"participant,omitempty"`
	MeetingID   string     `json:"meetingId,omitempty"`
	Time        string     `json:"time"`
	Timestamp   int64      `json:"timestamp"`
}

// NewReaction creates a reaction record at the given wall-clock time
func NewReaction(category Category, participant string, at time.Time) Record {
	return Record{
		Emoji:       category.Emoji,
		Name:        category.Name,
		Participant: participant,
		Time:        at.Format(TimeLayout),
		Timestamp:   at.UnixMilli(),
	}
}

// NewDivider creates a meeting divider record
func NewDivider(meetingID string, at time.Time) Record {
	return Record{
		Type:      RecordTypeDivider,
		MeetingID: meetingID,
		Time:      at.Format(TimeLayout),
		Timestamp: at.UnixMilli(),
	}
}

// IsDivider reports whether the record marks a meeting boundary
func (r Record) IsDivider() bool {
	return r.Type == RecordTypeDivider
}

// OccurredAt resolves the instant of the record. The wall-clock time string
// wins when it parses in loc; otherwise the epoch timestamp is used.
func (r Record) OccurredAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(TimeLayout, r.Time, loc); err == nil {
		return t
	}
	return time.UnixMilli(r.Timestamp).In(loc)
}

// Validate checks that the fields required for the record kind are present
func (r Record) Validate() error {
	switch r.Type {
	case RecordTypeDivider:
		if strings.TrimSpace(r.MeetingID) == "" {
			return fmt.Errorf("%w: meetingId", ErrMissingField)
		}
	case RecordTypeReaction:
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("%w: name", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRecordType, r.Type)
	}
	if r.Time == "" && r.Timestamp == 0 {
		return fmt.Errorf("%w: time", ErrMissingField)
	}
	return nil
}
