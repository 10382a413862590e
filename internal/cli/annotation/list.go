package annotation

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// ListCmd returns the annotation list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a task's annotations",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runList), requireTask),
	}

	cmd.Flags().String("task", "", "Task ID or UUID (required)")
	cmd.Flags().Bool("by-entity", false, "Group annotations by entity ID")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := resolveTaskFlag(ctx, args)
	if err != nil {
		return nil, err
	}

	svc := args.App().AnnotationService
	if args.GetBool("by-entity") {
		groups, err := svc.GroupEntities(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		return groupsToJSON(groups), nil
	}

	annotations, err := svc.ListAnnotations(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	return annotationList(converters.AnnotationsToJSON(annotations)), nil
}
