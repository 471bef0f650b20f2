package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
)

const sampleExport = `{
  "records": [
    {"emoji": "❤️", "name": "Heart", "participant": "Bob", "time": "2025-03-04 10:05:00", "timestamp": 1741082700000},
    {"type": "meeting-divider", "meetingId": "Retro", "time": "2025-03-04 10:00:00", "timestamp": 1741082400000},
    {"emoji": "👍", "name": "Thumbs Up", "participant": "Alice", "time": "2025-03-04 09:01:00", "timestamp": 1741078860000},
    {"type": "meeting-divider", "meetingId": "Standup", "time": "2025-03-04 09:00:00", "timestamp": 1741078800000}
  ],
  "participants": ["Alice", {"name": "Bob", "email": "bob@corp.io"}],
  "selectedParticipant": "Alice",
  "exportDate": "2025-03-04T01:10:00.000Z"
}`

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	t.Setenv("REACTION_CATEGORIES", "👍:Thumbs Up,❤️:Heart")
	t.Setenv("TIMEZONE", "UTC")

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommandVersion(t *testing.T) {
	output, err := executeCommand(NewRootCmd("test"), "--version")
	require.NoError(t, err)
	assert.Equal(t, "reactlog version test\n", output)
}

func TestPivotCommand(t *testing.T) {
	path := writeExport(t, sampleExport)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	output, err := executeCommand(NewRootCmd("test"), "pivot", path, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote 2 sheet(s)")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Standup", "Retro"}, f.GetSheetList())

	rows, err := f.GetRows("Retro")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Retro", "bob@corp.io", "Bob", "", "10:05:00"}, rows[1])
}

func TestPivotCommand_CategoriesFlag(t *testing.T) {
	path := writeExport(t, sampleExport)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	// Heart is no longer a category, so the Retro meeting has nothing to show
	_, err := executeCommand(NewRootCmd("test"), "pivot", path, "-o", out, "--categories", "👍:Thumbs Up")
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Retro")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPivotCommand_NothingToExport(t *testing.T) {
	path := writeExport(t, `{"records": [], "participants": []}`)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := executeCommand(NewRootCmd("test"), "pivot", path, "--out", out)
	assert.ErrorIs(t, err, usecaseErrors.ErrNothingToExport)
	assert.NoFileExists(t, out)
}

func TestShowCommand(t *testing.T) {
	path := writeExport(t, sampleExport)

	output, err := executeCommand(NewRootCmd("test"), "show", path)
	require.NoError(t, err)
	assert.Contains(t, output, "== Standup ==")
	assert.Contains(t, output, "== Retro ==")
	assert.Contains(t, output, entities.PlaceholderContactID)
	assert.Contains(t, output, "09:01:00")
}

func TestShowCommand_JSON(t *testing.T) {
	path := writeExport(t, sampleExport)

	output, err := executeCommand(NewRootCmd("test"), "show", path, "--json")
	require.NoError(t, err)

	var tables []entities.PivotTable
	require.NoError(t, json.Unmarshal([]byte(output), &tables))
	require.Len(t, tables, 2)
	assert.Equal(t, "Alice", tables[0].Rows[0].ParticipantDisplayName)
	assert.Equal(t, "09:01:00", tables[0].Rows[0].Cells["Thumbs Up"])
}

func TestShowCommand_MalformedRecord(t *testing.T) {
	path := writeExport(t, `{"records": [{"type": "meeting-divider", "time": "2025-03-04 09:00:00"}]}`)

	output, err := executeCommand(NewRootCmd("test"), "show", path)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
	assert.Contains(t, output, "Hint:")
}

func TestShowCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(NewRootCmd("test"), "show", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
