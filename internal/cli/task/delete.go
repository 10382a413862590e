package task

import (
	"context"
	"fmt"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id|uuid>",
		Short: "Delete a task and its annotations",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runDelete)),
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().TaskService
	task, err := svc.ResolveTask(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}

	if !cli.Confirm(args.GetCmd(), fmt.Sprintf("Delete task #%d: '%s'?", task.ID, preview(task.Text, 40))) {
		return "Cancelled", nil
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		return nil, err
	}
	return cli.Resultf(task.ID, "Task %d deleted successfully", task.ID), nil
}
