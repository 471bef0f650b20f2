package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
)

// ContentTypeXLSX is the MIME type of the spreadsheet export
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FixedHeaders precede the category columns on every sheet
var FixedHeaders = []string{"Meeting ID", "Email", "Participant Name"}

// SpreadsheetFileName returns the download name for the spreadsheet export
func SpreadsheetFileName(now time.Time) string {
	return fmt.Sprintf("meeting-records-%s.xlsx", now.Format("2006-01-02"))
}

// JSONFileName returns the download name for the raw JSON export
func JSONFileName(now time.Time) string {
	return fmt.Sprintf("meet-records-%s.json", now.Format("2006-01-02"))
}

// HeaderRow returns the header of every sheet
func HeaderRow(categories []string) []string {
	header := make([]string, 0, len(FixedHeaders)+len(categories))
	header = append(header, FixedHeaders...)
	return append(header, categories...)
}

// WriteWorkbook writes one sheet per pivot table
func WriteWorkbook(w io.Writer, tables []entities.PivotTable, categories []string) error {
	if len(tables) == 0 {
		return usecaseErrors.ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	names := SheetNames(tables)
	for i, table := range tables {
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}

		if err := writeSheet(f, name, table, categories); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, table entities.PivotTable, categories []string) error {
	if err := setRow(f, sheet, 1, HeaderRow(categories)); err != nil {
		return err
	}
	for i, row := range table.Rows {
		values := []string{row.MeetingLabel, row.ContactID, row.ParticipantDisplayName}
		for _, c := range categories {
			values = append(values, row.Cells[c])
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", row, sheet, err)
	}
	return nil
}

// SheetNames derives a valid, unique sheet name for every table
func SheetNames(tables []entities.PivotTable) []string {
	names := make([]string, len(tables))
	used := make(map[string]bool, len(tables))
	for i, table := range tables {
		base := sanitizeSheetName(table.SheetName())
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = entities.TruncateRunes(base, entities.MaxSheetNameLength-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

func sanitizeSheetName(name string) string {
	name = strings.Trim(sheetNameReplacer.Replace(name), "'")
	if strings.TrimSpace(name) == "" {
		return "Meeting"
	}
	return entities.TruncateRunes(name, entities.MaxSheetNameLength)
}
