package label

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	labelservice "github.com/kdpii/nerlabel/internal/services/label"
	"github.com/spf13/cobra"
)

// SeedCmd returns the label seed subcommand
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <file>",
		Short: "Load a label vocabulary from a file",
		Long: `Load labels from a JSON or YAML vocabulary, or import them from an
existing tagging interface config (.xml).

Existing labels with the same value are kept. The first nine new labels get
hotkeys 1-9 unless the file carries its own (--keep-hotkeys).

Vocabulary files are a list of values or {value, background} objects:

  - PER
  - value: LOC
    background: "#00FF00"

Examples:
  nerlabel label seed labels.json --global
  nerlabel label seed labels.yaml --project=1 --clear
  nerlabel label seed config.xml --project=1
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runSeed)),
	}

	cmd.Flags().Bool("clear", false, "Delete the scope's existing labels first")
	cmd.Flags().Bool("keep-hotkeys", false, "Use hotkeys from the file instead of 1-9")

	addScopeFlags(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

type seedView struct {
	Created  []converters.LabelJSON `json:"created"`
	Existing int                    `json:"existing"`
	Cleared  int                    `json:"cleared"`
}

func (v seedView) GetIDs() []int {
	ids := make([]int, len(v.Created))
	for i, l := range v.Created {
		ids[i] = l.ID
	}
	return ids
}

func (v seedView) Human() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ Seeded %d labels (%d already existed", len(v.Created), v.Existing)
	if v.Cleared > 0 {
		fmt.Fprintf(&b, ", %d cleared", v.Cleared)
	}
	b.WriteString(")\n")
	for _, l := range v.Created {
		b.WriteString("  " + describe(l) + "\n")
	}
	return b.String()
}

func runSeed(ctx context.Context, args *handler.Arguments) (any, error) {
	scope, err := resolveScope(ctx, args)
	if err != nil {
		return nil, err
	}

	filename := args.Args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	svc := args.App().LabelService
	var result *labelservice.SeedResult
	if strings.EqualFold(filepath.Ext(filename), ".xml") {
		result, err = svc.ImportConfig(ctx, scope, bytes.NewReader(data))
	} else {
		var entries []labelservice.SeedEntry
		entries, err = labelservice.ParseSeedFile(filename, data)
		if err != nil {
			return nil, err
		}
		result, err = svc.Seed(ctx, labelservice.SeedRequest{
			ProjectID:   scope,
			Entries:     entries,
			Clear:       args.GetBool("clear"),
			KeepHotkeys: args.GetBool("keep-hotkeys"),
		})
	}
	if err != nil {
		return nil, err
	}

	return seedView{
		Created:  converters.LabelsToJSON(result.Created),
		Existing: result.Existing,
		Cleared:  result.Cleared,
	}, nil
}
