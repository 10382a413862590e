package project

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id|name]",
		Short: "Show project details",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runShow)),
	}

	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	project, err := cli.ProjectFromArgs(ctx, args.CLI, args.GetCmd(), args.Args)
	if err != nil {
		return nil, err
	}
	return projectView{converters.ProjectToJSON(project)}, nil
}
