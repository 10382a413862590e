package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/cli/handler"
	"github.com/kdpii/nerlabel/internal/cli/styles"
	"github.com/kdpii/nerlabel/internal/converters"
	"github.com/kdpii/nerlabel/internal/models"
	uploadservice "github.com/kdpii/nerlabel/internal/services/upload"
	"github.com/spf13/cobra"
)

// UploadCmd returns the upload parent command
func UploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Ingest corpus files and inspect past uploads",
	}

	cmd.AddCommand(FileCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// FileCmd returns the upload file subcommand
func FileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Ingest a corpus file into a project",
		Long: `Ingest a .txt, .csv, .tsv, .json or .jsonl file. Each record becomes a
task; pre-annotated records (entities/annotations) also create annotations.
The whole file is ingested in one transaction.

Examples:
  nerlabel upload file corpus.txt --project=1
  nerlabel upload file dialogs.jsonl --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runFile)),
	}

	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

// ListCmd returns the upload list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's uploads, newest first",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runList)),
	}

	cli.AddProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

// ShowCmd returns the upload show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an upload's status, preview and extracted vocabulary",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runShow)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type ingestView struct {
	Upload        uploadView             `json:"upload"`
	Annotations   int                    `json:"annotations"`
	CreatedLabels []converters.LabelJSON `json:"created_labels"`
}

func (v ingestView) GetID() int { return v.Upload.ID }

func (v ingestView) Human() string {
	s := fmt.Sprintf("✓ Ingested %s: %d tasks, %d annotations", v.Upload.Filename, v.Upload.TaskCount, v.Annotations)
	if n := len(v.CreatedLabels); n > 0 {
		values := make([]string, n)
		for i, l := range v.CreatedLabels {
			values[i] = l.Value
		}
		s += fmt.Sprintf("\n  new labels: %s", strings.Join(values, ", "))
	}
	return s
}

type uploadView struct {
	converters.UploadJSON
}

func (v uploadView) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("[%d] %s", v.ID, v.Filename)) + "\n\n")
	b.WriteString(styles.RenderField("Status", statusText(v.UploadJSON)) + "\n")
	if v.ErrorMessage != "" {
		b.WriteString(styles.ErrorStyle.Render(v.ErrorMessage) + "\n")
	}
	b.WriteString(styles.RenderField("Size", v.SizeHuman) + "\n")
	b.WriteString(styles.RenderField("Type", v.FileType) + "\n")
	b.WriteString(styles.RenderField("Tasks", fmt.Sprintf("%d of %d lines", v.TaskCount, v.TotalLines)) + "\n")
	b.WriteString(styles.RenderField("Uploaded", humanize.Time(v.UploadedAt)) + "\n")
	b.WriteString(styles.RenderField("Checksum", v.Checksum))
	if len(v.ExtractedLabels) > 0 {
		b.WriteString("\n" + styles.RenderField("Labels", strings.Join(v.ExtractedLabels, ", ")))
	}
	if len(v.DialogTypes) > 0 {
		b.WriteString("\n" + styles.RenderField("Dialog types", strings.Join(v.DialogTypes, ", ")))
	}
	if v.ContentPreview != "" {
		b.WriteString("\n" + styles.SectionStyle.Render("Preview") + "\n")
		b.WriteString(styles.SubtitleStyle.Render(v.ContentPreview))
	}
	return styles.RenderCard(b.String())
}

type uploadList []converters.UploadJSON

func (l uploadList) GetIDs() []int {
	ids := make([]int, len(l))
	for i, u := range l {
		ids[i] = u.ID
	}
	return ids
}

func (l uploadList) Human() string {
	if len(l) == 0 {
		return "No uploads found"
	}
	var b strings.Builder
	for _, u := range l {
		fmt.Fprintf(&b, "  [%d] %-30s %8s  %-10s %d tasks  %s\n",
			u.ID, u.Filename, u.SizeHuman, statusText(u), u.TaskCount, humanize.Time(u.UploadedAt))
	}
	return b.String()
}

func statusText(u converters.UploadJSON) string {
	switch models.UploadStatus(u.Status) {
	case models.UploadCompleted:
		return styles.CompletedStyle.Render(u.Status)
	case models.UploadFailed:
		return styles.ErrorStyle.Render(u.Status)
	}
	return u.Status
}

func runFile(ctx context.Context, args *handler.Arguments) (any, error) {
	project, err := cli.ResolveProject(ctx, args.CLI, args.GetCmd())
	if err != nil {
		return nil, err
	}

	path := args.Args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := args.App().UploadService.Ingest(ctx, uploadservice.IngestRequest{
		ProjectID: project.ID,
		Filename:  filepath.Base(path),
		Data:      data,
	})
	if err != nil {
		return nil, err
	}

	return ingestView{
		Upload:        uploadView{converters.UploadToJSON(result.Upload)},
		Annotations:   result.Annotations,
		CreatedLabels: converters.LabelsToJSON(result.CreatedLabels),
	}, nil
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	project, err := cli.ResolveProject(ctx, args.CLI, args.GetCmd())
	if err != nil {
		return nil, err
	}
	uploads, err := args.App().UploadService.ListUploads(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return uploadList(converters.UploadsToJSON(uploads)), nil
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := cli.ParseID("upload", args.Args[0])
	if err != nil {
		return nil, err
	}
	u, err := args.App().UploadService.GetUpload(ctx, id)
	if err != nil {
		return nil, err
	}
	return uploadView{converters.UploadToJSON(u)}, nil
}
