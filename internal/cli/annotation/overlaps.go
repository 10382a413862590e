package annotation

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// OverlapsCmd returns the annotation overlaps subcommand
func OverlapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlaps",
		Short: "List annotations of a task that overlap another annotation",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runOverlaps), requireTask),
	}

	cmd.Flags().String("task", "", "Task ID or UUID (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runOverlaps(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := resolveTaskFlag(ctx, args)
	if err != nil {
		return nil, err
	}
	overlapping, err := args.App().AnnotationService.FindOverlaps(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	return annotationList(converters.AnnotationsToJSON(overlapping)), nil
}
