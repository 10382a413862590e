package annotation

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	annotationservice "github.com/kdpii/nerlabel/internal/services/annotation"
	"github.com/spf13/cobra"
)

var updateFlags = []string{"start", "end", "labels", "add-label", "remove-label",
	"confidence", "identifier-type", "entity", "notes"}

// UpdateCmd returns the annotation update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id|uuid>",
		Short: "Update an annotation",
		Long: `Update an annotation. Only the flags given are changed.

Examples:
  nerlabel annotation update 7 --end=14
  nerlabel annotation update 7 --add-label=ORG --remove-label=PER
  nerlabel annotation update 7 --entity=""   # clear the entity
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			for _, name := range updateFlags {
				if cmd.Flags().Changed(name) {
					return nil
				}
			}
			return cli.Usagef("nothing to update")
		}),
	}

	cmd.Flags().Int("start", 0, "New start offset")
	cmd.Flags().Int("end", 0, "New end offset")
	cmd.Flags().String("labels", "", "Replace labels (comma separated)")
	cmd.Flags().StringSlice("add-label", nil, "Add a label")
	cmd.Flags().StringSlice("remove-label", nil, "Remove a label")
	cmd.Flags().String("confidence", "", "Confidence: high, medium, low")
	cmd.Flags().String("identifier-type", "", "Identifier type: direct, quasi, default")
	cmd.Flags().String("entity", "", "Entity ID (empty clears)")
	cmd.Flags().String("notes", "", "Notes")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().AnnotationService
	a, err := svc.ResolveAnnotation(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}

	parser := args.Parser()
	req := annotationservice.UpdateAnnotationRequest{
		ID:             a.ID,
		Start:          parser.OptionalInt("start"),
		End:            parser.OptionalInt("end"),
		AddLabels:      args.GetStringSlice("add-label", nil),
		RemoveLabels:   args.GetStringSlice("remove-label", nil),
		Confidence:     parser.OptionalString("confidence"),
		IdentifierType: parser.OptionalString("identifier-type"),
		EntityID:       parser.OptionalString("entity"),
		Notes:          parser.OptionalString("notes"),
	}
	if labels := parser.OptionalString("labels"); labels != nil {
		values := cli.SplitList(*labels)
		req.Labels = &values
	}

	updated, err := svc.UpdateAnnotation(ctx, req)
	if err != nil {
		return nil, err
	}
	return annotationView{converters.AnnotationToJSON(updated)}, nil
}
