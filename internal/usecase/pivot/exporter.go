package pivot

import (
	"fmt"
	"sort"
	"time"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
)

// Builder turns a reaction log into per-meeting pivot tables
type Builder struct {
	categories []string
	location   *time.Location
}

// Option configures a Builder
type Option func(*Builder)

// WithLocation sets the zone used when a record has only an epoch timestamp
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) {
		if loc != nil {
			b.location = loc
		}
	}
}

// NewBuilder creates a builder for the fixed, ordered category list
func NewBuilder(categories []string, opts ...Option) (*Builder, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no reaction categories configured", usecaseErrors.ErrConfiguration)
	}

	b := &Builder{
		categories: append([]string(nil), categories...),
		location:   time.UTC,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// BuildPivotTables builds pivot tables with the default builder settings
func BuildPivotTables(log []entities.Record, roster entities.Roster, categories []string) ([]entities.PivotTable, error) {
	b, err := NewBuilder(categories)
	if err != nil {
		return nil, err
	}
	return b.Build(log, roster)
}

// Categories returns the column order of the produced rows
func (b *Builder) Categories() []string {
	return append([]string(nil), b.categories...)
}

// Build groups the newest-first log into one table per meeting segment.
// A malformed record rejects the whole call.
func (b *Builder) Build(log []entities.Record, roster entities.Roster) ([]entities.PivotTable, error) {
	for i, r := range log {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", usecaseErrors.ErrInvalidInput, i, err)
		}
	}

	segments := Segment(log)
	tables := make([]entities.PivotTable, 0, len(segments))
	for _, seg := range segments {
		tables = append(tables, entities.PivotTable{
			MeetingLabel: seg.Label,
			Rows:         b.rows(seg, roster),
		})
	}
	return tables, nil
}

func (b *Builder) rows(seg entities.MeetingSegment, roster entities.Roster) []entities.PivotRow {
	var order []string
	byParticipant := make(map[string]map[string][]entities.Record)

	for _, r := range seg.Events {
		perCategory, ok := byParticipant[r.Participant]
		if !ok {
			perCategory = make(map[string][]entities.Record)
			byParticipant[r.Participant] = perCategory
			order = append(order, r.Participant)
		}
		perCategory[r.Name] = append(perCategory[r.Name], r)
	}

	var rows []entities.PivotRow
	for _, id := range order {
		name, contact := resolve(id, roster)
		perCategory := byParticipant[id]

		k := 0
		for _, c := range b.categories {
			events := perCategory[c]
			sort.SliceStable(events, func(i, j int) bool {
				return events[i].OccurredAt(b.location).Before(events[j].OccurredAt(b.location))
			})
			if len(events) > k {
				k = len(events)
			}
		}

		for i := 0; i < k; i++ {
			row := entities.PivotRow{
				MeetingLabel: seg.Label,
				ContactID:    contact,
				Cells:        make(map[string]string, len(b.categories)),
			}
			if i == 0 {
				row.ParticipantDisplayName = name
			}
			for _, c := range b.categories {
				if events := perCategory[c]; i < len(events) {
					row.Cells[c] = b.timeOfDay(events[i])
				} else {
					row.Cells[c] = ""
				}
			}
			if row.IsEmpty() {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// resolve maps a participant id to its display name and contact id
func resolve(id string, roster entities.Roster) (string, string) {
	if p, ok := roster.Find(id); ok && id != "" {
		return p.Name, p.ContactID()
	}
	if id == "" {
		return entities.UnknownParticipant, entities.PlaceholderContactID
	}
	return id, entities.PlaceholderContactID
}

func (b *Builder) timeOfDay(r entities.Record) string {
	return r.OccurredAt(b.location).Format("15:04:05")
}
