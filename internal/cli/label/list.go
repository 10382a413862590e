package label

import (
	"context"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/converters"
	labelservice "github.com/kdpii/nerlabel/internal/services/label"
	"github.com/spf13/cobra"
)

// ListCmd returns the label list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels",
		Long:  "List a project's labels followed by the global labels, or only the global labels with --global.",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runList)),
	}

	cmd.Flags().Bool("no-global", false, "Exclude global labels")
	cmd.Flags().Bool("active", false, "Only active labels")

	addScopeFlags(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func listRequest(ctx context.Context, args *handler.Arguments) (labelservice.ListLabelsRequest, error) {
	req := labelservice.ListLabelsRequest{ActiveOnly: args.GetBool("active")}
	scope, err := resolveScope(ctx, args)
	if err != nil {
		return req, err
	}
	if scope == nil {
		req.GlobalOnly = true
		return req, nil
	}
	req.ProjectID = scope
	req.IncludeGlobal = !args.GetBool("no-global")
	return req, nil
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	req, err := listRequest(ctx, args)
	if err != nil {
		return nil, err
	}
	labels, err := args.App().LabelService.ListLabels(ctx, req)
	if err != nil {
		return nil, err
	}
	return labelList(converters.LabelsToJSON(labels)), nil
}
