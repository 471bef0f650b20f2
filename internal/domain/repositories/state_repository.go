package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
)

// StateRepository defines access to the facilitator's saved state
type StateRepository interface {
	// LoadRecords retrieves the log, newest first
	LoadRecords(ctx context.Context) ([]entities.Record, error)

	// SaveRecords replaces the log
	SaveRecords(ctx context.Context, records []entities.Record) error

	// LoadParticipants retrieves the normalized roster
	LoadParticipants(ctx context.Context) (entities.Roster, error)

	// SaveParticipants replaces the roster
	SaveParticipants(ctx context.Context, roster entities.Roster) error

	// LoadSelected retrieves the selected participant name, empty if none
	LoadSelected(ctx context.Context) (string, error)

	// SaveSelected stores the selected participant name, empty clears it
	SaveSelected(ctx context.Context, name string) error

	// LoadTimer retrieves the meeting timer
	LoadTimer(ctx context.Context) (*entities.MeetingTimer, error)

	// SaveTimer stores the meeting timer
	SaveTimer(ctx context.Context, timer *entities.MeetingTimer) error
}
