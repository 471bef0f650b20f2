package tracker

import "time"

// ParticipantResponse represents a roster entry
type ParticipantResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ContactID string `json:"contact_id"`
	Selected  bool   `json:"selected"`
}

// ParticipantListResponse represents the roster with the current selection
type ParticipantListResponse struct {
	Participants []ParticipantResponse `json:"participants"`
	Selected     string                `json:"selected,omitempty"`
	Total        int                   `json:"total"`
}

// RecordResponse represents one entry of the reaction log
type RecordResponse struct {
	Type        string `json:"type"`
	Emoji       string `json:"emoji,omitempty"`
	Name        string `json:"name,omitempty"`
	Participant string `json:"participant,omitempty"`
	MeetingID   string `json:"meeting_id,omitempty"`
	Time        string `json:"time"`
	Timestamp   int64  `json:"timestamp"`
}

// HistoryResponse represents the reaction log, newest first
type HistoryResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int              `json:"total"`
}

// CategoryResponse represents a reaction button
type CategoryResponse struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

// ClockResponse represents the facilitator's wall clock
type ClockResponse struct {
	Full       string             `json:"full"`
	Time       string             `json:"time"`
	Date       string             `json:"date"`
	Timestamp  int64              `json:"timestamp"`
	Timezone   string             `json:"timezone"`
	Categories []CategoryResponse `json:"categories"`
}

// PivotTableResponse represents one meeting's pivot table
type PivotTableResponse struct {
	MeetingLabel string     `json:"meeting_label"`
	SheetName    string     `json:"sheet_name"`
	Headers      []string   `json:"headers"`
	Rows         [][]string `json:"rows"`
}

// PivotResponse represents every meeting's pivot table
type PivotResponse struct {
	Tables []PivotTableResponse `json:"tables"`
	Total  int                  `json:"total"`
}

// ArchiveListResponse represents the archived export objects
type ArchiveListResponse struct {
	Objects []string `json:"objects"`
	Total   int      `json:"total"`
}

// TimerResponse represents the meeting timer
type TimerResponse struct {
	MeetingID      string     `json:"meeting_id,omitempty"`
	Running        bool       `json:"running"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	StoppedAt      *time.Time `json:"stopped_at,omitempty"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	Elapsed        string     `json:"elapsed"`
}
