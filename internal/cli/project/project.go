package project

import (
	"fmt"
	"strings"

	"github.com/kdpii/nerlabel/internal/cli/styles"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(StatsCmd())
	cmd.AddCommand(ResetCmd())
	cmd.AddCommand(DuplicateCmd())

	return cmd
}

type projectView struct {
	converters.ProjectJSON
}

func (v projectView) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("[%d] %s", v.ID, v.Name)) + "\n")
	if v.Description != "" {
		b.WriteString(styles.SubtitleStyle.Render(v.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.RenderField("Active", v.IsActive) + "\n")
	b.WriteString(styles.RenderField("Allow overlapping", v.AllowOverlappingAnnotations) + "\n")
	b.WriteString(styles.RenderField("Require all labels", v.RequireAllLabels) + "\n")
	if v.OwnerID != nil {
		b.WriteString(styles.RenderField("Owner", *v.OwnerID) + "\n")
	}
	b.WriteString(styles.RenderField("Created", v.CreatedAt.Format("2006-01-02 15:04")))
	return styles.RenderCard(b.String())
}

type projectList []converters.ProjectJSON

func (l projectList) GetIDs() []int {
	ids := make([]int, len(l))
	for i, p := range l {
		ids[i] = p.ID
	}
	return ids
}

func (l projectList) Human() string {
	if len(l) == 0 {
		return "No projects found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d projects:\n\n", len(l))
	for _, p := range l {
		fmt.Fprintf(&b, "  [%d] %s", p.ID, p.Name)
		if p.Description != "" {
			fmt.Fprintf(&b, " - %s", p.Description)
		}
		if !p.IsActive {
			b.WriteString(" (inactive)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

type statsView struct {
	converters.ProjectStatsJSON
	ProjectName string `json:"project_name"`
}

func (v statsView) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(v.ProjectName) + "\n\n")
	b.WriteString(styles.RenderField("Tasks", v.TaskCount) + "\n")
	b.WriteString(styles.LabelStyle.Render("Completed:") + " " +
		styles.RenderProgress(v.CompletedTaskCount, v.TaskCount, v.CompletionPercentage) + "\n")
	b.WriteString(styles.RenderField("Annotations", v.AnnotationCount) + "\n")
	b.WriteString(styles.RenderField("Entities", v.EntityCount))
	if len(v.LabelDistribution) > 0 {
		b.WriteString("\n" + styles.SectionStyle.Render("Labels") + "\n")
		b.WriteString(styles.RenderDistribution(v.LabelDistribution))
	}
	return styles.RenderCard(b.String())
}
