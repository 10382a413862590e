package task

import (
	"context"
	"io"
	"os"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	taskservice "github.com/kdpii/nerlabel/internal/services/task"
	"github.com/spf13/cobra"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a task from a single text.

Examples:
  # Simple task (human-readable output)
  nerlabel task create --text="Barack Obama visited Paris." --project=1

  # Quiet mode for bash capture
  TASK_ID=$(nerlabel task create --text="..." --quiet)

  # Read the text from stdin
  echo "Seoul is in Korea." | nerlabel task create --text=-
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("text")
			return err
		}),
	}

	cmd.Flags().String("text", "", "Task text (required, use - for stdin)")
	cmd.Flags().String("identifier-type", "", "Identifier type: direct, quasi, default")
	cmd.Flags().String("filename", "", "Original filename")
	cmd.Flags().Int("line", 0, "Line number in the original file")

	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	project, err := cli.ResolveProject(ctx, args.CLI, args.GetCmd())
	if err != nil {
		return nil, err
	}

	text := args.GetString("text", "")
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}

	task, err := args.App().TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		ProjectID:        project.ID,
		Text:             text,
		OriginalFilename: args.GetString("filename", ""),
		LineNumber:       args.GetInt("line", 0),
		IdentifierType:   args.GetString("identifier-type", ""),
	})
	if err != nil {
		return nil, err
	}
	return taskView{converters.TaskToJSON(task)}, nil
}
