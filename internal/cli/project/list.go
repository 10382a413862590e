package project

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	projectservice "github.com/kdpii/nerlabel/internal/services/project"
	"github.com/spf13/cobra"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects with their details.",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runList)),
	}

	cmd.Flags().Bool("active", false, "Only list active projects")
	cmd.Flags().String("owner", "", "Only list projects with this owner")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	projects, err := args.App().ProjectService.ListProjects(ctx, projectservice.ListProjectsRequest{
		ActiveOnly: args.GetBool("active"),
		OwnerID:    args.Parser().OptionalString("owner"),
	})
	if err != nil {
		return nil, err
	}
	return projectList(converters.ProjectsToJSON(projects)), nil
}
