package task

import (
	"fmt"
	"strings"

	"github.com/kdpii/nerlabel/internal/cli/styles"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(UndoneCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

type taskView struct {
	converters.TaskJSON
}

func (v taskView) Human() string {
	status := "open"
	if v.IsCompleted {
		status = styles.CompletedStyle.Render("completed")
	}
	return fmt.Sprintf("✓ Task %d (%s): %s", v.ID, status, preview(v.Text, 60))
}

// detailView is a task with its annotations
type detailView struct {
	converters.TaskJSON
	Annotations []converters.AnnotationJSON `json:"annotations"`

	annotations []*models.Annotation
	colors      map[string]string
}

func (v detailView) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Task %d", v.ID)))
	if v.IsCompleted {
		b.WriteString("  " + styles.CompletedStyle.Render("✓ completed"))
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(v.UUID) + "\n\n")
	b.WriteString(styles.HighlightSpans(v.Text, v.annotations, v.colors) + "\n")

	if v.OriginalFilename != "" {
		b.WriteString("\n" + styles.RenderField("Source", fmt.Sprintf("%s:%d", v.OriginalFilename, v.LineNumber)))
	}
	b.WriteString("\n" + styles.RenderField("Identifier type", v.IdentifierType))

	if len(v.annotations) > 0 {
		b.WriteString("\n" + styles.SectionStyle.Render("Annotations") + "\n")
		for _, a := range v.annotations {
			line := fmt.Sprintf("  [%d] %d-%d %q %s", a.ID, a.Start, a.End, a.Text, strings.Join(a.Labels, ","))
			if a.EntityID != nil {
				line += " → " + *a.EntityID
			}
			if a.Overlapping {
				line = styles.OverlappingStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return styles.RenderCard(strings.TrimRight(b.String(), "\n"))
}

type summaryList []converters.TaskSummaryJSON

func (l summaryList) GetIDs() []int {
	ids := make([]int, len(l))
	for i, s := range l {
		ids[i] = s.ID
	}
	return ids
}

func (l summaryList) Human() string {
	if len(l) == 0 {
		return "No tasks found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d tasks:\n\n", len(l))
	for _, s := range l {
		mark := " "
		if s.IsCompleted {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s [%d] %s (%d annotations, %d entities)\n",
			mark, s.ID, preview(s.Text, 50), s.AnnotationCount, s.EntityCount)
	}
	return b.String()
}

type completionView struct {
	Changed   int  `json:"changed"`
	Completed bool `json:"completed"`
}

func (v completionView) Human() string {
	state := "incomplete"
	if v.Completed {
		state = "complete"
	}
	return fmt.Sprintf("✓ Marked %d tasks %s", v.Changed, state)
}

func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n-1]) + "…"
}
