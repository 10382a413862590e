package task

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	taskservice "github.com/kdpii/nerlabel/internal/services/task"
	"github.com/kdpii/nerlabel/internal/user"
	"github.com/spf13/cobra"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := completionCmd(true)
	cmd.Use = "done [id|uuid]..."
	cmd.Short = "Mark tasks complete"
	cmd.Long = `Mark one or more tasks complete.

Examples:
  nerlabel task done 12
  nerlabel task done 12 13 14 --annotator=alice
  nerlabel task done --all --project=1
`
	cmd.Flags().String("annotator", "", "Annotator ID to record (default: $NERLABEL_ANNOTATOR, then the system user)")
	return cmd
}

// UndoneCmd returns the task undone subcommand
func UndoneCmd() *cobra.Command {
	cmd := completionCmd(false)
	cmd.Use = "undone [id|uuid]..."
	cmd.Short = "Mark tasks incomplete"
	return cmd
}

func completionCmd(completed bool) *cobra.Command {
	cmd := &cobra.Command{
		RunE: handler.Command(
			handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
				return runCompletion(ctx, args, completed)
			}),
			func(cmd *cobra.Command) error {
				all, _ := cmd.Flags().GetBool("all")
				if !all && len(cmd.Flags().Args()) == 0 {
					return &cli.UsageError{
						Message:    "no tasks selected",
						Suggestion: "Pass task IDs or --all with --project",
					}
				}
				return nil
			}),
	}

	cmd.Flags().Bool("all", false, "Apply to every task in the project")
	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCompletion(ctx context.Context, args *handler.Arguments, completed bool) (any, error) {
	svc := args.App().TaskService
	var annotator *string
	if completed {
		annotator = user.Annotator(args.Parser().OptionalString("annotator"))
	}

	if !args.GetBool("all") && len(args.Args) == 1 {
		task, err := svc.ResolveTask(ctx, args.Args[0])
		if err != nil {
			return nil, err
		}
		if completed {
			task, err = svc.MarkCompleted(ctx, task.ID, annotator)
		} else {
			task, err = svc.MarkIncomplete(ctx, task.ID)
		}
		if err != nil {
			return nil, err
		}
		return taskView{converters.TaskToJSON(task)}, nil
	}

	req := taskservice.BulkCompletionRequest{Completed: completed, AnnotatorID: annotator}
	if args.GetBool("all") {
		project, err := cli.ResolveProject(ctx, args.CLI, args.GetCmd())
		if err != nil {
			return nil, err
		}
		req.ProjectID = project.ID
	} else {
		ids, err := cli.ParseIDs("task", args.Args)
		if err != nil {
			return nil, err
		}
		req.TaskIDs = ids
	}

	changed, err := svc.SetCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	return completionView{Changed: changed, Completed: completed}, nil
}
