package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	"github.com/johnquangdev/meeting-reactions/internal/usecase/pivot"
	"github.com/johnquangdev/meeting-reactions/pkg/config"
)

// Context holds what every command needs to pivot an export.
type Context struct {
	Builder  *pivot.Builder
	Location *time.Location
	Snapshot *entities.Snapshot
}

// GetContext resolves settings from flags and the environment, then reads
// the export named by path ("-" reads stdin).
func GetContext(cmd *cobra.Command, path string) (*Context, error) {
	tracker, err := config.LoadTracker()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("categories"); v != "" {
		tracker.Categories = v
	}
	if v, _ := cmd.Flags().GetString("timezone"); v != "" {
		tracker.Timezone = v
	}

	location, err := tracker.Location()
	if err != nil {
		return nil, err
	}
	categories, err := tracker.ReactionCategories()
	if err != nil {
		return nil, err
	}
	builder, err := pivot.NewBuilder(entities.CategoryNames(categories), pivot.WithLocation(location))
	if err != nil {
		return nil, err
	}

	snapshot, err := readSnapshot(cmd, path)
	if err != nil {
		return nil, err
	}

	return &Context{Builder: builder, Location: location, Snapshot: snapshot}, nil
}

// Tables builds the pivot tables of the loaded export.
func (c *Context) Tables() ([]entities.PivotTable, error) {
	return c.Builder.Build(c.Snapshot.Records, c.Snapshot.Participants)
}

func readSnapshot(cmd *cobra.Command, path string) (*entities.Snapshot, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open export: %w", err)
		}
		defer f.Close()
		r = f
	}

	var snapshot entities.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode export %s: %w", path, err)
	}
	return &snapshot, nil
}
