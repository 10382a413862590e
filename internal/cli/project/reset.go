package project

import (
	"context"
	"fmt"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/spf13/cobra"
)

// ResetCmd returns the project reset subcommand
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <id|name>",
		Short: "Delete all annotations and reopen every task",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runReset)),
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

type resetView struct {
	ProjectID          int `json:"project_id"`
	AnnotationsDeleted int `json:"annotations_deleted"`
	TasksReopened      int `json:"tasks_reopened"`
}

func (v resetView) GetID() int { return v.ProjectID }

func (v resetView) Human() string {
	return fmt.Sprintf("✓ Project %d reset: %d annotations deleted, %d tasks reopened",
		v.ProjectID, v.AnnotationsDeleted, v.TasksReopened)
}

func runReset(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().ProjectService
	project, err := svc.ResolveProject(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}

	if !cli.Confirm(args.GetCmd(), fmt.Sprintf("Delete every annotation in project #%d: '%s'?", project.ID, project.Name)) {
		return "Cancelled", nil
	}

	result, err := svc.ResetProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return resetView{
		ProjectID:          project.ID,
		AnnotationsDeleted: result.AnnotationsDeleted,
		TasksReopened:      result.TasksReopened,
	}, nil
}
