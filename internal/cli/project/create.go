package project

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	projectservice "github.com/kdpii/nerlabel/internal/services/project"
	"github.com/spf13/cobra"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new annotation project.

Examples:
  # Simple project (human-readable output)
  nerlabel project create --name="Clinical notes"

  # Quiet mode for bash capture
  PROJECT_ID=$(nerlabel project create --name="Clinical notes" --quiet)

  # Disallow overlapping spans and require known labels
  nerlabel project create --name="Strict" --allow-overlapping=false --require-all-labels
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("name")
			return err
		}),
	}

	cmd.Flags().String("name", "", "Project name (required)")
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().Bool("allow-overlapping", true, "Allow overlapping annotations")
	cmd.Flags().Bool("require-all-labels", false, "Require every annotation to carry known labels")
	cmd.Flags().String("owner", "", "Owner ID")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	parser := args.Parser()
	name, _ := parser.ParseString("name")

	req := projectservice.CreateProjectRequest{
		Name:             name,
		Description:      args.GetString("description", ""),
		AllowOverlapping: parser.OptionalBool("allow-overlapping"),
		RequireAllLabels: args.GetBool("require-all-labels"),
		OwnerID:          parser.OptionalString("owner"),
	}

	project, err := args.App().ProjectService.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}
	return projectView{converters.ProjectToJSON(project)}, nil
}
