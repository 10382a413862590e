package label

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	labelservice "github.com/kdpii/nerlabel/internal/services/label"
	"github.com/spf13/cobra"
)

// CreateCmd returns the label create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a label",
		Long: `Create a label in a project or in the global scope.

Examples:
  nerlabel label create --value=PER --color=FF0000 --hotkey=p
  nerlabel label create --value=LOC --global --quiet
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			if _, err := p.ParseString("value"); err != nil {
				return err
			}
			_, err := p.ParseColor("color")
			return err
		}),
	}

	cmd.Flags().String("value", "", "Label value (required)")
	cmd.Flags().String("color", "", "Background color, hex (default #7D56F4)")
	cmd.Flags().String("hotkey", "", "Single character hotkey")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("example", "", "Example text")
	cmd.Flags().Int("sort-order", 0, "Sort order (default: after the last label)")

	addScopeFlags(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	scope, err := resolveScope(ctx, args)
	if err != nil {
		return nil, err
	}

	parser := args.Parser()
	color, _ := parser.ParseColor("color")
	l, err := args.App().LabelService.CreateLabel(ctx, labelservice.CreateLabelRequest{
		ProjectID:   scope,
		Value:       args.GetString("value", ""),
		Background:  color,
		Hotkey:      args.GetString("hotkey", ""),
		Category:    args.GetString("category", ""),
		Description: args.GetString("description", ""),
		Example:     args.GetString("example", ""),
		SortOrder:   parser.OptionalInt("sort-order"),
	})
	if err != nil {
		return nil, err
	}
	return labelView{converters.LabelToJSON(l)}, nil
}
