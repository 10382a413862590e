package annotation

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdpii/nerlabel/internal/annotate"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/spf13/cobra"
)

// AnnotationCmd returns the annotation parent command
func AnnotationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "annotation",
		Aliases: []string{"ann"},
		Short:   "Manage span annotations",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(LinkCmd())
	cmd.AddCommand(UnlinkCmd())
	cmd.AddCommand(RelateCmd())
	cmd.AddCommand(OverlapsCmd())

	return cmd
}

type annotationView struct {
	converters.AnnotationJSON
}

func (v annotationView) Human() string {
	return "✓ " + describe(v.AnnotationJSON)
}

type annotationList []converters.AnnotationJSON

func (l annotationList) GetIDs() []int {
	ids := make([]int, len(l))
	for i, a := range l {
		ids[i] = a.ID
	}
	return ids
}

func (l annotationList) Human() string {
	if len(l) == 0 {
		return "No annotations found"
	}
	var b strings.Builder
	for _, a := range l {
		b.WriteString("  " + describe(a) + "\n")
	}
	return b.String()
}

type entityGroupJSON struct {
	EntityID    string                      `json:"entity_id"`
	Annotations []converters.AnnotationJSON `json:"annotations"`
}

type entityGroupList []entityGroupJSON

func (l entityGroupList) GetIDs() []int {
	var ids []int
	for _, g := range l {
		for _, a := range g.Annotations {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func (l entityGroupList) Human() string {
	if len(l) == 0 {
		return "No annotations found"
	}
	var b strings.Builder
	for _, g := range l {
		fmt.Fprintf(&b, "%s (%d mentions)\n", g.EntityID, len(g.Annotations))
		for _, a := range g.Annotations {
			b.WriteString("    " + describe(a) + "\n")
		}
	}
	return b.String()
}

func groupsToJSON(groups []annotate.EntityGroup) entityGroupList {
	out := make(entityGroupList, len(groups))
	for i, g := range groups {
		out[i] = entityGroupJSON{EntityID: g.EntityID, Annotations: converters.AnnotationsToJSON(g.Annotations)}
	}
	return out
}

func describe(a converters.AnnotationJSON) string {
	s := fmt.Sprintf("[%d] %d-%d %q %s", a.ID, a.Start, a.End, a.Text, strings.Join(a.Labels, ","))
	if a.EntityID != nil {
		s += " → " + *a.EntityID
	}
	if a.Overlapping {
		s += " (overlapping)"
	}
	return s
}

// resolveTaskFlag resolves --task as an id or uuid
func resolveTaskFlag(ctx context.Context, args *handler.Arguments) (*models.Task, error) {
	ref, err := args.Parser().ParseString("task")
	if err != nil {
		return nil, err
	}
	return args.App().TaskService.ResolveTask(ctx, ref)
}

func requireTask(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("task")
	return err
}
