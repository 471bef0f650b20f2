package presenter

import (
	"fmt"
	"time"

	"github.com/johnquangdev/meeting-reactions/internal/adapter/dto/tracker"
	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	"github.com/johnquangdev/meeting-reactions/internal/usecase/export"
	trackerUsecase "github.com/johnquangdev/meeting-reactions/internal/usecase/tracker"
)

// ToParticipantResponse converts a Participant entity to ParticipantResponse DTO
func ToParticipantResponse(p entities.Participant, selected string) tracker.ParticipantResponse {
	return tracker.ParticipantResponse{
		Name:      p.Name,
		Email:     p.Email,
		ContactID: p.ContactID(),
		Selected:  p.Name == selected,
	}
}

// ToParticipantListResponse converts the roster to ParticipantListResponse
func ToParticipantListResponse(roster entities.Roster, selected string) *tracker.ParticipantListResponse {
	participants := make([]tracker.ParticipantResponse, len(roster))
	for i, p := range roster {
		participants[i] = ToParticipantResponse(p, selected)
	}

	return &tracker.ParticipantListResponse{
		Participants: participants,
		Selected:     selected,
		Total:        len(participants),
	}
}

// ToRecordResponse converts a Record entity to RecordResponse DTO
func ToRecordResponse(r entities.Record) tracker.RecordResponse {
	if r.IsDivider() {
		return tracker.RecordResponse{
			Type:      string(entities.RecordTypeDivider),
			MeetingID: r.MeetingID,
			Time:      r.Time,
			Timestamp: r.Timestamp,
		}
	}

	// Records imported from older exports may lack a participant
	participant := r.Participant
	if participant == "" {
		participant = entities.UnknownParticipant
	}

	return tracker.RecordResponse{
		Type:        "reaction",
		Emoji:       r.Emoji,
		Name:        r.Name,
		Participant: participant,
		Time:        r.Time,
		Timestamp:   r.Timestamp,
	}
}

// ToHistoryResponse converts the log to HistoryResponse
func ToHistoryResponse(records []entities.Record) *tracker.HistoryResponse {
	items := make([]tracker.RecordResponse, len(records))
	for i, r := range records {
		items[i] = ToRecordResponse(r)
	}

	return &tracker.HistoryResponse{
		Records: items,
		Total:   len(items),
	}
}

// ToClockResponse converts the clock and categories to ClockResponse
func ToClockResponse(clock entities.Clock, timezone string, categories []entities.Category) *tracker.ClockResponse {
	items := make([]tracker.CategoryResponse, len(categories))
	for i, c := range categories {
		items[i] = tracker.CategoryResponse{Emoji: c.Emoji, Name: c.Name}
	}

	return &tracker.ClockResponse{
		Full:       clock.Full,
		Time:       clock.Time,
		Date:       clock.Date,
		Timestamp:  clock.Timestamp,
		Timezone:   timezone,
		Categories: items,
	}
}

// ToPivotResponse converts pivot tables to the spreadsheet-shaped PivotResponse
func ToPivotResponse(tables []entities.PivotTable, categories []string) *tracker.PivotResponse {
	headers := export.HeaderRow(categories)
	sheetNames := export.SheetNames(tables)

	items := make([]tracker.PivotTableResponse, len(tables))
	for i, table := range tables {
		rows := make([][]string, len(table.Rows))
		for j, row := range table.Rows {
			values := []string{row.MeetingLabel, row.ContactID, row.ParticipantDisplayName}
			for _, category := range categories {
				values = append(values, row.Cells[category])
			}
			rows[j] = values
		}
		items[i] = tracker.PivotTableResponse{
			MeetingLabel: table.MeetingLabel,
			SheetName:    sheetNames[i],
			Headers:      headers,
			Rows:         rows,
		}
	}

	return &tracker.PivotResponse{
		Tables: items,
		Total:  len(items),
	}
}

// ToTimerResponse converts TimerOutput to TimerResponse DTO
func ToTimerResponse(out *trackerUsecase.TimerOutput) *tracker.TimerResponse {
	if out == nil {
		return &tracker.TimerResponse{Elapsed: FormatElapsed(0)}
	}

	return &tracker.TimerResponse{
		MeetingID:      out.Timer.MeetingID,
		Running:        out.Running,
		StartedAt:      out.Timer.StartedAt,
		StoppedAt:      out.Timer.StoppedAt,
		ElapsedSeconds: int64(out.Elapsed / time.Second),
		Elapsed:        FormatElapsed(out.Elapsed),
	}
}

// FormatElapsed renders a duration as HH:MM:SS
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
