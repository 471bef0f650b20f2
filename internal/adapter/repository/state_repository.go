package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
)

// Storage keys, shared with the browser page's local storage
const (
	KeyRecords             = "meetRecords"
	KeyParticipants        = "meetParticipants"
	KeySelectedParticipant = "selectedParticipant"
	KeyTimer               = "meetTimer"
)

// stateRepository implements the StateRepository interface over a KVStore
type stateRepository struct {
	store repositories.KVStore
}

// NewStateRepository creates a new state repository
func NewStateRepository(store repositories.KVStore) repositories.StateRepository {
	return &stateRepository{store: store}
}

// LoadRecords retrieves the log, newest first
func (r *stateRepository) LoadRecords(ctx context.Context) ([]entities.Record, error) {
	records := []entities.Record{}
	if err := r.load(ctx, KeyRecords, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveRecords replaces the log
func (r *stateRepository) SaveRecords(ctx context.Context, records []entities.Record) error {
	if records == nil {
		records = []entities.Record{}
	}
	return r.save(ctx, KeyRecords, records)
}

// LoadParticipants retrieves the roster. Entries may be stored as bare
// names or {name, email} objects; both come back normalized.
func (r *stateRepository) LoadParticipants(ctx context.Context) (entities.Roster, error) {
	var stored entities.Roster
	if err := r.load(ctx, KeyParticipants, &stored); err != nil {
		return nil, err
	}

	roster := make(entities.Roster, 0, len(stored))
	for _, p := range stored {
		p = p.Normalize()
		if p.Name == "" || roster.Contains(p.Name) {
			continue
		}
		roster = append(roster, p)
	}
	return roster, nil
}

// SaveParticipants replaces the roster
func (r *stateRepository) SaveParticipants(ctx context.Context, roster entities.Roster) error {
	if roster == nil {
		roster = entities.Roster{}
	}
	return r.save(ctx, KeyParticipants, roster)
}

// LoadSelected retrieves the selected participant name
func (r *stateRepository) LoadSelected(ctx context.Context) (string, error) {
	raw, err := r.store.Get(ctx, KeySelectedParticipant)
	if errors.Is(err, repositories.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", KeySelectedParticipant, err)
	}

	var name *string
	if err := json.Unmarshal(raw, &name); err != nil {
		// written by the page as a plain string
		return string(raw), nil
	}
	if name == nil {
		return "", nil
	}
	return *name, nil
}

// SaveSelected stores the selected participant name
func (r *stateRepository) SaveSelected(ctx context.Context, name string) error {
	if name == "" {
		if err := r.store.Delete(ctx, KeySelectedParticipant); err != nil {
			return fmt.Errorf("failed to clear %s: %w", KeySelectedParticipant, err)
		}
		return nil
	}
	return r.save(ctx, KeySelectedParticipant, name)
}

// LoadTimer retrieves the meeting timer
func (r *stateRepository) LoadTimer(ctx context.Context) (*entities.MeetingTimer, error) {
	timer := &entities.MeetingTimer{}
	if err := r.load(ctx, KeyTimer, timer); err != nil {
		return nil, err
	}
	return timer, nil
}

// SaveTimer stores the meeting timer
func (r *stateRepository) SaveTimer(ctx context.Context, timer *entities.MeetingTimer) error {
	return r.save(ctx, KeyTimer, timer)
}

func (r *stateRepository) load(ctx context.Context, key string, v interface{}) error {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, repositories.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (r *stateRepository) save(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
