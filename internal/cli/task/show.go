package task

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	labelservice "github.com/kdpii/nerlabel/internal/services/label"
	"github.com/spf13/cobra"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id|uuid>",
		Short: "Show task details",
		Long:  "Display a task's text with its annotated spans highlighted, followed by every annotation.",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runShow)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	a := args.App()
	task, err := a.TaskService.ResolveTask(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}
	annotations, err := a.AnnotationService.ListAnnotations(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	labels, err := a.LabelService.ListLabels(ctx, labelservice.ListLabelsRequest{
		ProjectID:     &task.ProjectID,
		IncludeGlobal: true,
	})
	if err != nil {
		return nil, err
	}

	colors := make(map[string]string, len(labels))
	for _, l := range labels {
		if _, ok := colors[l.Value]; !ok {
			colors[l.Value] = l.Background
		}
	}

	return detailView{
		TaskJSON:    converters.TaskToJSON(task),
		Annotations: converters.AnnotationsToJSON(annotations),
		annotations: annotations,
		colors:      colors,
	}, nil
}
