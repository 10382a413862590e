package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/cli/styles"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/spf13/cobra"
)

// StatsCmd returns the global stats command
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics across every project",
		Long:  "Show project, task and annotation totals with the label distribution across every project. Use 'nerlabel project stats' for a single project.",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runStats)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type globalView struct {
	converters.GlobalStatsJSON
}

func (v globalView) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("All projects") + "\n\n")
	b.WriteString(styles.RenderField("Projects", v.TotalProjects) + "\n")
	b.WriteString(styles.RenderField("Tasks", v.TotalTasks) + "\n")
	b.WriteString(styles.LabelStyle.Render("Completed:") + " " +
		styles.RenderProgress(v.CompletedTasks, v.TotalTasks, v.CompletionRate) + "\n")
	b.WriteString(styles.RenderField("Annotations", v.TotalAnnotations))
	if len(v.LabelDistribution) > 0 {
		b.WriteString("\n" + styles.SectionStyle.Render("Labels") + "\n")
		b.WriteString(styles.RenderDistribution(v.LabelDistribution))
	}
	return styles.RenderCard(b.String())
}

func runStats(ctx context.Context, args *handler.Arguments) (any, error) {
	stats, err := args.App().ProjectService.GetGlobalStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return globalView{converters.GlobalStatsToJSON(stats)}, nil
}
