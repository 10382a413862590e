package cli

import (
	"bufio"
	"context"
	"fmt"
	"errors"
	"strconv"
	"strings"

	"github.com/kdpii/nerlabel/internal/models"
	"github.com/spf13/cobra"
)

// ParseID parses a positive integer id argument
func ParseID(what, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, Usagef("invalid %s ID: %s", what, arg)
	}
	return id, nil
}

// ParseIDs parses a list of positive integer ids
func ParseIDs(what string, args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := ParseID(what, arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SplitList splits comma separated values, dropping blanks
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// AddOutputFlags adds the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// AddProjectFlag adds the --project flag taking an id or a name
func AddProjectFlag(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Project ID or name (default: $NERLABEL_PROJECT, then the default project)")
}

// ResolveProject picks the project a command acts on: the --project flag,
// then the configured default, then the project created by 'nerlabel init'
func ResolveProject(ctx context.Context, c *CLI, cmd *cobra.Command) (*models.Project, error) {
	ref, _ := cmd.Flags().GetString("project")
	if strings.TrimSpace(ref) == "" && c.App.Config != nil {
		ref = c.App.Config.DefaultProject
	}
	if strings.TrimSpace(ref) != "" {
		return c.App.ProjectService.ResolveProject(ctx, ref)
	}

	p, err := c.App.ProjectService.ResolveProject(ctx, models.DefaultProjectName)
	if errors.Is(err, models.ErrNotFound) {
		return nil, &UsageError{
			Message:    "no project selected",
			Suggestion: "Pass --project, set NERLABEL_PROJECT, or run 'nerlabel init'",
		}
	}
	return p, err
}

// ProjectFromArgs resolves the first positional argument as a project
// reference, falling back to ResolveProject when it is absent
func ProjectFromArgs(ctx context.Context, c *CLI, cmd *cobra.Command, args []string) (*models.Project, error) {
	if len(args) > 0 {
		return c.App.ProjectService.ResolveProject(ctx, args[0])
	}
	return ResolveProject(ctx, c, cmd)
}

// Confirm asks a y/N question on the command's input.
// Commands skip it when --force, --json or --quiet is set.
func Confirm(cmd *cobra.Command, prompt string) bool {
	for _, name := range []string{"force", "json", "quiet"} {
		if v, err := cmd.Flags().GetBool(name); err == nil && v {
			return true
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
