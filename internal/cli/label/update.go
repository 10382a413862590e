package label

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	labelservice "github.com/kdpii/nerlabel/internal/services/label"
	"github.com/spf13/cobra"
)

var updateFlags = []string{"value", "color", "hotkey", "category", "description", "example", "sort-order"}

// UpdateCmd returns the label update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a label",
		Long:  `Update a label. Only the flags given are changed; --hotkey="" clears the hotkey.`,
		Args:  cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			for _, name := range updateFlags {
				if cmd.Flags().Changed(name) {
					if cmd.Flags().Changed("color") {
						_, err := handler.NewFlagParser(cmd).ParseColor("color")
						return err
					}
					return nil
				}
			}
			return cli.Usagef("nothing to update")
		}),
	}

	cmd.Flags().String("value", "", "New value")
	cmd.Flags().String("color", "", "New background color")
	cmd.Flags().String("hotkey", "", "New hotkey (empty clears)")
	cmd.Flags().String("category", "", "New category")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("example", "", "New example")
	cmd.Flags().Int("sort-order", 0, "New sort order")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := cli.ParseID("label", args.Args[0])
	if err != nil {
		return nil, err
	}

	parser := args.Parser()
	req := labelservice.UpdateLabelRequest{
		ID:          id,
		Value:       parser.OptionalString("value"),
		Hotkey:      parser.OptionalString("hotkey"),
		Category:    parser.OptionalString("category"),
		Description: parser.OptionalString("description"),
		Example:     parser.OptionalString("example"),
		SortOrder:   parser.OptionalInt("sort-order"),
	}
	if args.Has("color") {
		color, _ := parser.ParseColor("color")
		req.Background = &color
	}

	l, err := args.App().LabelService.UpdateLabel(ctx, req)
	if err != nil {
		return nil, err
	}
	return labelView{converters.LabelToJSON(l)}, nil
}
