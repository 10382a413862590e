package annotation

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the annotation delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id|uuid>",
		Short: "Delete an annotation",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runDelete)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().AnnotationService
	a, err := svc.ResolveAnnotation(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}
	if err := svc.DeleteAnnotation(ctx, a.ID); err != nil {
		return nil, err
	}
	return cli.Resultf(a.ID, "Annotation %d deleted successfully", a.ID), nil
}
