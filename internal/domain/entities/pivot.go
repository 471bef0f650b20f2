package entities

// UnscheduledMeeting labels reactions logged before any meeting divider exists
const UnscheduledMeeting = "unscheduled"

// MaxSheetNameLength is the longest sheet name a spreadsheet accepts
const MaxSheetNameLength = 31

// MeetingSegment is a contiguous run of reactions between two dividers,
// in chronological order. StartIndex and EndIndex are positions in the
// chronological log (inclusive).
type MeetingSegment struct {
	Label      string
	Events     []Record
	StartIndex int
	EndIndex   int
}

// PivotRow is one participant-occurrence row of a pivot table
type PivotRow struct {
	MeetingLabel           string            `json:"meeting_label"`
	ContactID              string            `json:"contact_id"`
	ParticipantDisplayName string            `json:"participant_name"`
	Cells                  map[string]string `json:"cells"`
}

// IsEmpty reports whether every category cell is blank
func (r PivotRow) IsEmpty() bool {
	for _, v := range r.Cells {
		if v != "" {
			return false
		}
	}
	return true
}

// PivotTable holds the rows of one meeting segment
type PivotTable struct {
	MeetingLabel string     `json:"meeting_label"`
	Rows         []PivotRow `json:"rows"`
}

// SheetName returns the meeting label truncated to the sheet-name limit
func (t PivotTable) SheetName() string {
	return TruncateRunes(t.MeetingLabel, MaxSheetNameLength)
}

// TruncateRunes cuts s to at most n runes
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
