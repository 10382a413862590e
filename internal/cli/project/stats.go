package project

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// StatsCmd returns the project stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [id|name]",
		Short: "Show annotation progress for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runStats)),
	}

	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runStats(ctx context.Context, args *handler.Arguments) (any, error) {
	project, err := cli.ProjectFromArgs(ctx, args.CLI, args.GetCmd(), args.Args)
	if err != nil {
		return nil, err
	}
	stats, err := args.App().ProjectService.GetProjectStats(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return statsView{ProjectStatsJSON: converters.ProjectStatsToJSON(stats), ProjectName: project.Name}, nil
}
