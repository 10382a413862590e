package task

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// UpdateCmd returns the task update subcommand.
// Task text is immutable, so only the identifier type can change.
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id|uuid>",
		Short: "Change a task's identifier type",
		Args:  cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("identifier-type")
			return err
		}),
	}

	cmd.Flags().String("identifier-type", "", "Identifier type: direct, quasi, default (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().TaskService
	task, err := svc.ResolveTask(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}
	updated, err := svc.SetIdentifierType(ctx, task.ID, args.GetString("identifier-type", ""))
	if err != nil {
		return nil, err
	}
	return taskView{converters.TaskToJSON(updated)}, nil
}
