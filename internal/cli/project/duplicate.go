package project

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// DuplicateCmd returns the project duplicate subcommand
func DuplicateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicate <id|name>",
		Short: "Copy a project's settings, labels and tasks",
		Long:  "Copy a project's settings, labels and tasks into a new project named '<name> (Copy)'. Annotations are not copied.",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runDuplicate)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDuplicate(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().ProjectService
	project, err := svc.ResolveProject(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}
	dup, err := svc.DuplicateProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return projectView{converters.ProjectToJSON(dup)}, nil
}
