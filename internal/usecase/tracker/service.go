package tracker

import (
	"context"
	"time"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
)

// Service defines the interface for the reaction tracker use case
type Service interface {
	// Now returns the facilitator's current wall-clock time
	Now() entities.Clock

	// Categories returns the fixed reaction categories in column order
	Categories() []entities.Category

	// ListParticipants retrieves the roster
	ListParticipants(ctx context.Context) (entities.Roster, error)

	// SelectedParticipant retrieves the selected participant, empty if none
	SelectedParticipant(ctx context.Context) (string, error)

	// AddParticipant adds a participant; the first one is selected automatically
	AddParticipant(ctx context.Context, name, email string) (entities.Participant, error)

	// DeleteParticipant removes a participant and clears the selection if needed
	DeleteParticipant(ctx context.Context, name string) error

	// SelectParticipant selects the participant future reactions are attributed to
	SelectParticipant(ctx context.Context, name string) error

	// History retrieves the log, newest first
	History(ctx context.Context) ([]entities.Record, error)

	// RecordReaction logs a reaction for the selected participant
	RecordReaction(ctx context.Context, emoji, name string) (entities.Record, error)

	// AddMeetingDivider logs a meeting boundary
	AddMeetingDivider(ctx context.Context, meetingID string) (entities.Record, error)

	// ClearHistory deletes every record
	ClearHistory(ctx context.Context) error

	// ExportData returns the raw export document
	ExportData(ctx context.Context) (*entities.Snapshot, error)

	// ExportRaw renders the raw export document as a downloadable JSON file
	ExportRaw(ctx context.Context) (*FileOutput, error)

	// ImportData replaces the whole state with a raw export document
	ImportData(ctx context.Context, snapshot *entities.Snapshot) error

	// BuildPivot builds the per-meeting pivot tables of the current log
	BuildPivot(ctx context.Context) ([]entities.PivotTable, error)

	// ExportSpreadsheet renders the pivot tables as an xlsx workbook
	ExportSpreadsheet(ctx context.Context) (*FileOutput, error)

	// ArchiveExports uploads the spreadsheet and raw export to archive storage
	ArchiveExports(ctx context.Context) (*ArchiveOutput, error)

	// ListArchives lists previously archived export objects
	ListArchives(ctx context.Context) ([]string, error)

	// StartTimer starts timing a meeting
	StartTimer(ctx context.Context, meetingID string) (*TimerOutput, error)

	// StopTimer stops the running meeting timer
	StopTimer(ctx context.Context) (*TimerOutput, error)

	// Timer returns the meeting timer state
	Timer(ctx context.Context) (*TimerOutput, error)
}

// FileOutput is a rendered export file
type FileOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ArchivedFile describes one uploaded export
type ArchivedFile struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

// ArchiveOutput lists the uploaded exports
type ArchiveOutput struct {
	Spreadsheet ArchivedFile `json:"spreadsheet"`
	Raw         ArchivedFile `json:"raw"`
}

// TimerOutput is the meeting timer with its elapsed time at the moment of the call
type TimerOutput struct {
	Timer   entities.MeetingTimer
	Running bool
	Elapsed time.Duration
}
