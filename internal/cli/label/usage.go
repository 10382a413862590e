package label

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/spf13/cobra"
)

// UsageCmd returns the label usage subcommand
func UsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage [id]",
		Short: "Show how many annotations use each label",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runUsage)),
	}

	cmd.Flags().Bool("no-global", false, "Exclude global labels")
	cmd.Flags().Bool("active", false, "Only active labels")

	addScopeFlags(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUsage(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().LabelService

	if len(args.Args) == 1 {
		id, err := cli.ParseID("label", args.Args[0])
		if err != nil {
			return nil, err
		}
		u, err := svc.GetUsage(ctx, id)
		if err != nil {
			return nil, err
		}
		return usageList(converters.LabelUsagesToJSON([]*models.LabelUsage{u})), nil
	}

	req, err := listRequest(ctx, args)
	if err != nil {
		return nil, err
	}
	usages, err := svc.ListUsage(ctx, req)
	if err != nil {
		return nil, err
	}
	return usageList(converters.LabelUsagesToJSON(usages)), nil
}
