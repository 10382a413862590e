package task

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	taskservice "github.com/kdpii/nerlabel/internal/services/task"
	"github.com/spf13/cobra"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a project",
		Args:  cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runList), func(cmd *cobra.Command) error {
			if cmd.Flags().Changed("completed") && cmd.Flags().Changed("open") {
				return cli.Usagef("--completed and --open are mutually exclusive")
			}
			return nil
		}),
	}

	cmd.Flags().Bool("completed", false, "Only completed tasks")
	cmd.Flags().Bool("open", false, "Only tasks not yet completed")
	cmd.Flags().String("filename", "", "Only tasks from this uploaded file")
	cmd.Flags().Int("limit", 0, "Maximum number of tasks (0 for all)")
	cmd.Flags().Int("offset", 0, "Number of tasks to skip")

	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	project, err := cli.ResolveProject(ctx, args.CLI, args.GetCmd())
	if err != nil {
		return nil, err
	}

	req := taskservice.ListTasksRequest{
		ProjectID: project.ID,
		Filename:  args.Parser().OptionalString("filename"),
		Limit:     args.GetInt("limit", 0),
		Offset:    args.GetInt("offset", 0),
	}
	switch {
	case args.GetBool("completed"):
		completed := true
		req.Completed = &completed
	case args.GetBool("open"):
		completed := false
		req.Completed = &completed
	}

	summaries, err := args.App().TaskService.ListTasks(ctx, req)
	if err != nil {
		return nil, err
	}
	return summaryList(converters.TaskSummariesToJSON(summaries)), nil
}
