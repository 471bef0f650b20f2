package pivot

import (
	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
)

// Chronological returns the log oldest-first. The stored log is newest-first.
func Chronological(log []entities.Record) []entities.Record {
	out := make([]entities.Record, len(log))
	for i, r := range log {
		out[len(log)-1-i] = r
	}
	return out
}

// firstLabel returns the label of the earliest divider, or the unscheduled sentinel
func firstLabel(chrono []entities.Record) string {
	for _, r := range chrono {
		if r.IsDivider() {
			return r.MeetingID
		}
	}
	return entities.UnscheduledMeeting
}

// Segment splits a newest-first log into meeting segments in chronological
// order. Reactions before the first divider are labeled with that divider's
// meeting id. Segments without reactions are dropped.
func Segment(log []entities.Record) []entities.MeetingSegment {
	chrono := Chronological(log)

	var segments []entities.MeetingSegment
	current := entities.MeetingSegment{Label: firstLabel(chrono), StartIndex: 0}

	flush := func(end int) {
		if len(current.Events) == 0 {
			return
		}
		current.EndIndex = end
		segments = append(segments, current)
	}

	for i, r := range chrono {
		if r.IsDivider() {
			flush(i - 1)
			current = entities.MeetingSegment{Label: r.MeetingID, StartIndex: i + 1}
			continue
		}
		current.Events = append(current.Events, r)
	}
	flush(len(chrono) - 1)

	return segments
}
