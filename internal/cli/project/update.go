package project

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	projectservice "github.com/kdpii/nerlabel/internal/services/project"
	"github.com/spf13/cobra"
)

var updateFlags = []string{"name", "description", "active", "allow-overlapping", "require-all-labels", "owner"}

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Update project settings",
		Long: `Update a project. Only the flags given are changed.

Examples:
  nerlabel project update 1 --name="Renamed"
  nerlabel project update "Clinical notes" --allow-overlapping=false
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			for _, name := range updateFlags {
				if cmd.Flags().Changed(name) {
					return nil
				}
			}
			return &cli.UsageError{
				Message:    "nothing to update",
				Suggestion: "Pass at least one of --name, --description, --active, --allow-overlapping, --require-all-labels, --owner",
			}
		}),
	}

	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Bool("active", true, "Whether the project is active")
	cmd.Flags().Bool("allow-overlapping", true, "Allow overlapping annotations")
	cmd.Flags().Bool("require-all-labels", false, "Require every annotation to carry known labels")
	cmd.Flags().String("owner", "", "Owner ID")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App().ProjectService
	project, err := svc.ResolveProject(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}

	parser := args.Parser()
	updated, err := svc.UpdateProject(ctx, projectservice.UpdateProjectRequest{
		ID:               project.ID,
		Name:             parser.OptionalString("name"),
		Description:      parser.OptionalString("description"),
		IsActive:         parser.OptionalBool("active"),
		AllowOverlapping: parser.OptionalBool("allow-overlapping"),
		RequireAllLabels: parser.OptionalBool("require-all-labels"),
		OwnerID:          parser.OptionalString("owner"),
	})
	if err != nil {
		return nil, err
	}
	return projectView{converters.ProjectToJSON(updated)}, nil
}
