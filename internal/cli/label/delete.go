package label

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the label delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a label that no annotation uses",
		Long:  "Delete a label. Labels referenced by annotations cannot be deleted; deactivate them instead.",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runDelete)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	l, err := resolveLabel(ctx, args)
	if err != nil {
		return nil, err
	}
	if err := args.App().LabelService.DeleteLabel(ctx, l.ID); err != nil {
		return nil, err
	}
	return cli.Resultf(l.ID, "Label %d (%s) deleted successfully", l.ID, l.Value), nil
}

// ActivateCmd returns the label activate subcommand
func ActivateCmd() *cobra.Command {
	return activeCmd("activate <id>", "Make a label available to annotators", true)
}

// DeactivateCmd returns the label deactivate subcommand
func DeactivateCmd() *cobra.Command {
	return activeCmd("deactivate <id>", "Hide a label from annotators without deleting it", false)
}

func activeCmd(use, short string, active bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			id, err := cli.ParseID("label", args.Args[0])
			if err != nil {
				return nil, err
			}
			l, err := args.App().LabelService.SetActive(ctx, id, active)
			if err != nil {
				return nil, err
			}
			return labelView{converters.LabelToJSON(l)}, nil
		})),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}
