package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/annotation"
	"github.com/kdpii/nerlabel/internal/cli/export"
	"github.com/kdpii/nerlabel/internal/cli/label"
	"github.com/kdpii/nerlabel/internal/cli/project"
	"github.com/kdpii/nerlabel/internal/cli/setup"
	"github.com/kdpii/nerlabel/internal/cli/stats"
	"github.com/kdpii/nerlabel/internal/cli/styles"
	"github.com/kdpii/nerlabel/internal/cli/task"
	"github.com/kdpii/nerlabel/internal/cli/upload"
	"github.com/kdpii/nerlabel/internal/config"
	"github.com/kdpii/nerlabel/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/kdpii/nerlabel/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "nerlabel",
	Short: "nerlabel - named-entity annotation from the terminal",
	Long: `nerlabel stores texts to annotate, the labels used to annotate them and the
annotated spans, and exports finished work to Label Studio, CoNLL, CSV and JSONL.

Every command accepts --json for machine-readable output and --quiet for ids only.`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupEnvironment,
}

func init() {
	rootCmd.AddCommand(setup.InitCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(annotation.AnnotationCmd())
	rootCmd.AddCommand(label.LabelCmd())
	rootCmd.AddCommand(upload.UploadCmd())
	rootCmd.AddCommand(export.ExportCmd())
	rootCmd.AddCommand(stats.StatsCmd())
}

// setupEnvironment configures logging and output styles before any command runs.
// A broken config file is reported by the command itself when it opens the store.
func setupEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	if err := logging.Init(cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	styles.Init(cfg.ColorScheme)
	return nil
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Handler errors were already printed by the output formatter
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
	}
	return cli.ExitCode(err)
}
