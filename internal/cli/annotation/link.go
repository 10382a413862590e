package annotation

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	annotationservice "github.com/kdpii/nerlabel/internal/services/annotation"
	"github.com/spf13/cobra"
)

// LinkCmd returns the annotation link subcommand
func LinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <id> <other-id>",
		Short: "Mark two annotations as related",
		Args:  cobra.ExactArgs(2),
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return runLink(ctx, args, true)
		})),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// UnlinkCmd returns the annotation unlink subcommand
func UnlinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlink <id> <other-id>",
		Short: "Remove the relation between two annotations",
		Args:  cobra.ExactArgs(2),
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return runLink(ctx, args, false)
		})),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLink(ctx context.Context, args *handler.Arguments, link bool) (any, error) {
	ids, err := cli.ParseIDs("annotation", args.Args)
	if err != nil {
		return nil, err
	}

	svc := args.App().AnnotationService
	if link {
		err = svc.Link(ctx, ids[0], ids[1])
	} else {
		err = svc.Unlink(ctx, ids[0], ids[1])
	}
	if err != nil {
		return nil, err
	}

	if link {
		return cli.Resultf(ids[0], "Annotation %d linked to %d", ids[0], ids[1]), nil
	}
	return cli.Resultf(ids[0], "Annotation %d unlinked from %d", ids[0], ids[1]), nil
}

// RelateCmd returns the annotation relate subcommand
func RelateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relate <id|uuid>",
		Short: "Add a typed relationship from an annotation to an entity",
		Long: `Add a typed relationship from an annotation to an entity.

Example:
  nerlabel annotation relate 7 --entity=person-2 --type=spouse_of
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runRelate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			if _, err := p.ParseString("entity"); err != nil {
				return err
			}
			_, err := p.ParseString("type")
			return err
		}),
	}

	cmd.Flags().String("entity", "", "Target entity ID (required)")
	cmd.Flags().String("type", "", "Relationship type (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRelate(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().AnnotationService
	a, err := svc.ResolveAnnotation(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}
	updated, err := svc.AddRelationship(ctx, annotationservice.RelationshipRequest{
		AnnotationID: a.ID,
		EntityID:     args.GetString("entity", ""),
		Type:         args.GetString("type", ""),
	})
	if err != nil {
		return nil, err
	}
	return annotationView{converters.AnnotationToJSON(updated)}, nil
}
