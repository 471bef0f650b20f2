package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
)

var categories = []string{"Thumbs Up", "Heart"}

func row(label, contact, name, thumbs, heart string) entities.PivotRow {
	return entities.PivotRow{
		MeetingLabel:           label,
		ContactID:              contact,
		ParticipantDisplayName: name,
		Cells:                  map[string]string{"Thumbs Up": thumbs, "Heart": heart},
	}
}

func TestWriteWorkbook(t *testing.T) {
	tables := []entities.PivotTable{
		{
			MeetingLabel: "Planning",
			Rows: []entities.PivotRow{
				row("Planning", "a@x.io", "Alice", "09:01:00", ""),
				row("Planning", "a@x.io", "", "09:02:00", ""),
			},
		},
		{
			MeetingLabel: "Retro",
			Rows: []entities.PivotRow{
				row("Retro", entities.PlaceholderContactID, "Bob", "", "10:00:00"),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, tables, categories))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Planning", "Retro"}, f.GetSheetList())

	rows, err := f.GetRows("Planning")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Meeting ID", "Email", "Participant Name", "Thumbs Up", "Heart"}, rows[0])
	assert.Equal(t, []string{"Planning", "a@x.io", "Alice", "09:01:00", ""}, pad(rows[1], 5))
	assert.Equal(t, []string{"Planning", "a@x.io", "", "09:02:00", ""}, pad(rows[2], 5))

	rows, err = f.GetRows("Retro")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Retro", entities.PlaceholderContactID, "Bob", "", "10:00:00"}, pad(rows[1], 5))
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf, nil, categories)
	assert.ErrorIs(t, err, usecaseErrors.ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestSheetNames(t *testing.T) {
	long := "2025 Q1 planning: platform/infra review"
	tables := []entities.PivotTable{
		{MeetingLabel: "Standup"},
		{MeetingLabel: "standup"},
		{MeetingLabel: long},
		{MeetingLabel: long},
		{MeetingLabel: "[draft]"},
		{MeetingLabel: "''"},
	}

	names := SheetNames(tables)
	assert.Equal(t, "Standup", names[0])
	assert.Equal(t, "standup (2)", names[1])
	assert.Equal(t, "2025 Q1 planning_ platform_infr", names[2])
	assert.Equal(t, "2025 Q1 planning_ platform_ (2)", names[3])
	assert.Equal(t, "_draft_", names[4])
	assert.Equal(t, "Meeting", names[5])
	for _, n := range names {
		assert.LessOrEqual(t, len([]rune(n)), entities.MaxSheetNameLength)
	}
}

func TestFileNames(t *testing.T) {
	now := time.Date(2025, 3, 4, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "meeting-records-2025-03-04.xlsx", SpreadsheetFileName(now))
	assert.Equal(t, "meet-records-2025-03-04.json", JSONFileName(now))
}

// pad restores trailing blank cells that the reader trims
func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}
