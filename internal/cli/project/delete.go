package project

import (
	"context"
	"fmt"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a project",
		Long:  "Delete a project with its tasks, annotations, labels and uploads (requires confirmation unless --force or --quiet).",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runDelete)),
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().ProjectService
	project, err := svc.ResolveProject(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}

	if !cli.Confirm(args.GetCmd(), fmt.Sprintf("Delete project #%d: '%s'?", project.ID, project.Name)) {
		return "Cancelled", nil
	}

	if err := svc.DeleteProject(ctx, project.ID); err != nil {
		return nil, err
	}
	return cli.Resultf(project.ID, "Project %d deleted successfully", project.ID), nil
}
