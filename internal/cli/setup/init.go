package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/config"
	"github.com/spf13/cobra"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and the default project",
		Long: `Create the database schema and the "Default Project". Running it again is
harmless: the default project is only created when missing.

Examples:
  nerlabel init
  nerlabel init --write-config   # also write a config file with the defaults
`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runInit)),
	}

	cmd.Flags().Bool("write-config", false, "Write the current configuration to the config file if it does not exist")
	cli.AddOutputFlags(cmd)

	return cmd
}

type initView struct {
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
	Created     bool   `json:"created"`
	ConfigPath  string `json:"config_path,omitempty"`
}

func (v initView) GetID() int { return v.ProjectID }

func (v initView) Human() string {
	s := fmt.Sprintf("✓ Using existing project %d (%s)", v.ProjectID, v.ProjectName)
	if v.Created {
		s = fmt.Sprintf("✓ Created project %d (%s)", v.ProjectID, v.ProjectName)
	}
	if v.ConfigPath != "" {
		s += "\n✓ Wrote config to " + v.ConfigPath
	}
	return s
}

func runInit(ctx context.Context, args *handler.Arguments) (any, error) {
	a := args.App()
	project, created, err := a.ProjectService.EnsureDefaultProject(ctx)
	if err != nil {
		return nil, err
	}
	view := initView{ProjectID: project.ID, ProjectName: project.Name, Created: created}

	if args.GetBool("write-config") {
		path, err := config.Path()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := a.Config.SaveTo(path); err != nil {
				return nil, fmt.Errorf("failed to write config: %w", err)
			}
			view.ConfigPath = path
		}
	}

	return view, nil
}
