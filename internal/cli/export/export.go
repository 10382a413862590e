package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/export"
	exportservice "github.com/kdpii/nerlabel/internal/services/export"
	"github.com/spf13/cobra"
)

// ExportCmd returns the export parent command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project's annotations",
		Long: `Export a project's tasks and annotations.

Output goes to stdout unless --output is given. With --json and no
--output the rendered document is returned in the "content" field.`,
	}

	cmd.AddCommand(formatCmd(export.FormatLabelStudio, "Label Studio JSON task list"))
	cmd.AddCommand(formatCmd(export.FormatCoNLL, "CoNLL token-per-line BIO tags"))
	cmd.AddCommand(formatCmd(export.FormatCSV, "CSV, one row per annotation"))
	cmd.AddCommand(formatCmd(export.FormatConfig, "Label Studio labeling config XML"))
	cmd.AddCommand(formatCmd(export.FormatJSONL, "JSONL with entities, re-ingestable"))

	return cmd
}

func formatCmd(format export.Format, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(format),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return runExport(ctx, args, format)
		})),
	}

	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	if format != export.FormatConfig {
		cmd.Flags().Bool("completed-only", false, "Only export completed tasks")
	}
	if format == export.FormatCoNLL {
		cmd.Flags().String("tie-break", "", "Tag choice for tokens under several spans: first, longest, confidence")
	}

	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

type exportView struct {
	ProjectID int    `json:"project_id"`
	Format    string `json:"format"`
	Tasks     int    `json:"tasks"`
	Path      string `json:"path,omitempty"`
	Bytes     int64  `json:"bytes"`
	Content   string `json:"content,omitempty"`
}

func (v exportView) GetID() int { return v.ProjectID }

func (v exportView) Human() string {
	if v.Path == "" {
		return ""
	}
	return fmt.Sprintf("✓ Exported %d tasks as %s to %s (%s)", v.Tasks, v.Format, v.Path, humanize.Bytes(uint64(v.Bytes)))
}

func runExport(ctx context.Context, args *handler.Arguments, format export.Format) (any, error) {
	project, err := cli.ResolveProject(ctx, args.CLI, args.GetCmd())
	if err != nil {
		return nil, err
	}

	req := exportservice.ExportRequest{
		ProjectID:     project.ID,
		Format:        format,
		CompletedOnly: args.GetBool("completed-only"),
	}
	if tb := args.GetString("tie-break", ""); tb != "" {
		if req.TieBreak, err = export.ParseTieBreak(tb); err != nil {
			return nil, err
		}
	}

	view := exportView{ProjectID: project.ID, Format: string(format), Path: args.GetString("output", "")}
	svc := args.App().ExportService
	jsonOutput := args.GetBool("json")
	quiet := args.GetBool("quiet")

	switch {
	case view.Path != "":
		f, err := os.Create(view.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", view.Path, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("Error closing export file: %v", err)
			}
		}()
		cw := &countingWriter{w: f}
		if view.Tasks, err = svc.Write(ctx, cw, req); err != nil {
			return nil, err
		}
		view.Bytes = cw.n
		return view, nil

	case jsonOutput || quiet:
		var buf bytes.Buffer
		if view.Tasks, err = svc.Write(ctx, &buf, req); err != nil {
			return nil, err
		}
		view.Bytes = int64(buf.Len())
		if jsonOutput {
			view.Content = buf.String()
		}
		return view, nil

	default:
		// a failed export prints nothing to stdout
		var buf bytes.Buffer
		if _, err := svc.Write(ctx, &buf, req); err != nil {
			return nil, err
		}
		if _, err := io.Copy(os.Stdout, &buf); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
