package annotation

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	annotationservice "github.com/kdpii/nerlabel/internal/services/annotation"
	"github.com/spf13/cobra"
)

// CreateCmd returns the annotation create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Annotate a span of a task",
		Long: `Annotate the characters [start, end) of a task's text.

Offsets count characters, not bytes. The span text is read from the task
when --text is omitted.

Examples:
  nerlabel annotation create --task=12 --start=0 --end=12 --labels=PER
  nerlabel annotation create --task=12 --start=21 --end=26 --labels=LOC,GPE --confidence=medium --quiet
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			if err := requireTask(cmd); err != nil {
				return err
			}
			for _, name := range []string{"start", "end"} {
				if !cmd.Flags().Changed(name) {
					return cli.Usagef("--%s is required", name)
				}
			}
			return nil
		}),
	}

	cmd.Flags().String("task", "", "Task ID or UUID (required)")
	cmd.Flags().Int("start", 0, "Start offset, inclusive (required)")
	cmd.Flags().Int("end", 0, "End offset, exclusive (required)")
	cmd.Flags().String("labels", "", "Comma separated label values")
	cmd.Flags().String("text", "", "Span text (defaults to the task text at the offsets)")
	cmd.Flags().String("confidence", "", "Confidence: high, medium, low")
	cmd.Flags().String("identifier-type", "", "Identifier type: direct, quasi, default")
	cmd.Flags().String("entity", "", "Entity ID for coreference")
	cmd.Flags().String("notes", "", "Free-form notes")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := resolveTaskFlag(ctx, args)
	if err != nil {
		return nil, err
	}

	a, err := args.App().AnnotationService.CreateAnnotation(ctx, annotationservice.CreateAnnotationRequest{
		TaskID:         task.ID,
		Start:          args.GetInt("start", 0),
		End:            args.GetInt("end", 0),
		Text:           args.GetString("text", ""),
		Labels:         cli.SplitList(args.GetString("labels", "")),
		Confidence:     args.GetString("confidence", ""),
		IdentifierType: args.GetString("identifier-type", ""),
		EntityID:       args.GetString("entity", ""),
		Notes:          args.GetString("notes", ""),
	})
	if err != nil {
		return nil, err
	}
	return annotationView{converters.AnnotationToJSON(a)}, nil
}
