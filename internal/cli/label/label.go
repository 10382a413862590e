package label

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/cli/styles"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/spf13/cobra"
)

// LabelCmd returns the label parent command
func LabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage label vocabularies",
		Long: `Manage labels. Labels belong to a project, or are global (--global)
and visible to every project.`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(UsageCmd())
	cmd.AddCommand(SeedCmd())
	cmd.AddCommand(ActivateCmd())
	cmd.AddCommand(DeactivateCmd())

	return cmd
}

type labelView struct {
	converters.LabelJSON
}

func (v labelView) Human() string {
	return "✓ " + describe(v.LabelJSON)
}

type labelList []converters.LabelJSON

func (l labelList) GetIDs() []int {
	ids := make([]int, len(l))
	for i, lb := range l {
		ids[i] = lb.ID
	}
	return ids
}

func (l labelList) Human() string {
	if len(l) == 0 {
		return "No labels found"
	}
	var b strings.Builder
	for _, lb := range l {
		b.WriteString("  " + describe(lb) + "\n")
	}
	return b.String()
}

type usageList []converters.LabelUsageJSON

func (l usageList) GetIDs() []int {
	ids := make([]int, len(l))
	for i, u := range l {
		ids[i] = u.ID
	}
	return ids
}

func (l usageList) Human() string {
	if len(l) == 0 {
		return "No labels found"
	}
	var b strings.Builder
	for _, u := range l {
		fmt.Fprintf(&b, "  %-40s %d uses", describe(u.LabelJSON), u.UsageCount)
		if !u.CanBeDeleted {
			b.WriteString(" (in use)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func describe(l converters.LabelJSON) string {
	chip := styles.RenderLabelChip(&models.Label{Value: l.Value, Background: l.Background})
	s := fmt.Sprintf("[%d] %s", l.ID, chip)
	if l.Hotkey != nil {
		s += " (" + *l.Hotkey + ")"
	}
	if l.IsGlobal {
		s += " global"
	}
	if !l.IsActive {
		s += " inactive"
	}
	return s
}

// addScopeFlags adds --project and --global
func addScopeFlags(cmd *cobra.Command) {
	cli.AddProjectFlag(cmd)
	cmd.Flags().Bool("global", false, "Global label scope (visible to every project)")
}

// resolveScope returns nil for the global scope, else the selected project id
func resolveScope(ctx context.Context, args *handler.Arguments) (*int, error) {
	if args.GetBool("global") {
		if args.Has("project") {
			return nil, cli.Usagef("--global and --project are mutually exclusive")
		}
		return nil, nil
	}
	project, err := cli.ResolveProject(ctx, args.CLI, args.GetCmd())
	if err != nil {
		return nil, err
	}
	return &project.ID, nil
}

func resolveLabel(ctx context.Context, args *handler.Arguments) (*models.Label, error) {
	id, err := cli.ParseID("label", args.Args[0])
	if err != nil {
		return nil, err
	}
	return args.App().LabelService.GetLabel(ctx, id)
}
