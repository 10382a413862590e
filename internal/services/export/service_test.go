package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/export"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/kdpii/nerlabel/internal/services/upload"
	"github.com/kdpii/nerlabel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fixture struct {
	svc     Service
	repo    *database.Repository
	project *models.Project
	tasks   []*models.Task
}

// setup builds a project with two tasks; only the first is annotated and completed
func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	p := testutil.CreateTestProject(t, db, "export")
	first := testutil.CreateTestTask(t, db, p.ID, "John Smith lives in Boston")
	second := testutil.CreateTestTask(t, db, p.ID, "Nothing here")
	testutil.CreateTestAnnotation(t, db, first, 20, 26, "LOC")
	testutil.CreateTestAnnotation(t, db, first, 0, 10, "PERSON")
	testutil.CreateTestLabel(t, db, &p.ID, "PERSON", "p")
	testutil.CreateTestLabel(t, db, nil, "LOC", "")

	repo := database.NewRepository(db)
	first.MarkCompleted(time.Now(), nil)
	require.NoError(t, repo.UpdateTaskCompletion(context.Background(), first))

	return fixture{
		svc:     NewService(repo, Options{CoNLL: export.CoNLLOptions{TieBreak: export.TieBreakFirst}}),
		repo:    repo,
		project: p,
		tasks:   []*models.Task{first, second},
	}
}

func (f fixture) write(t *testing.T, req ExportRequest) (string, int) {
	t.Helper()
	req.ProjectID = f.project.ID
	var buf bytes.Buffer
	n, err := f.svc.Write(context.Background(), &buf, req)
	require.NoError(t, err)
	return buf.String(), n
}

// ============================================================================
// RECORDS
// ============================================================================

func TestRecords_OrderedByStart(t *testing.T) {
	t.Parallel()
	f := setup(t)

	records, err := f.svc.Records(context.Background(), ExportRequest{ProjectID: f.project.ID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, records[0].Annotations, 2)
	assert.Equal(t, "John Smith", records[0].Annotations[0].Text)
	assert.Empty(t, records[1].Annotations)

	completed, err := f.svc.Records(context.Background(), ExportRequest{ProjectID: f.project.ID, CompletedOnly: true})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, f.tasks[0].ID, completed[0].Task.ID)
}

func TestRecords_Errors(t *testing.T) {
	t.Parallel()
	f := setup(t)

	_, err := f.svc.Records(context.Background(), ExportRequest{ProjectID: 0})
	assert.ErrorIs(t, err, ErrInvalidProjectID)

	_, err = f.svc.Records(context.Background(), ExportRequest{ProjectID: 9999})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.svc.Write(context.Background(), &bytes.Buffer{}, ExportRequest{ProjectID: f.project.ID, Format: "xlsx"})
	assert.ErrorIs(t, err, models.ErrInvalidEnumValue)
}

// ============================================================================
// FORMATS
// ============================================================================

func TestWrite_LabelStudio(t *testing.T) {
	t.Parallel()
	f := setup(t)

	out, n := f.write(t, ExportRequest{Format: export.FormatLabelStudio})
	assert.Equal(t, 2, n)

	var tasks []export.LabelStudioTask
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, f.tasks[0].ID, tasks[0].ID)
	require.Len(t, tasks[0].Annotations, 2)
	assert.Equal(t, []string{"PERSON"}, tasks[0].Annotations[0].Result[0].Value.Labels)
	assert.Empty(t, tasks[1].Annotations)
}

func TestWrite_CoNLL(t *testing.T) {
	t.Parallel()
	f := setup(t)

	out, _ := f.write(t, ExportRequest{Format: export.FormatCoNLL})
	want := "John\tB-PERSON\nSmith\tI-PERSON\nlives\tO\nin\tO\nBoston\tB-LOC\n\nNothing\tO\nhere\tO\n"
	assert.Equal(t, want, out)
}

func TestWrite_CSV(t *testing.T) {
	t.Parallel()
	f := setup(t)

	out, _ := f.write(t, ExportRequest{Format: export.FormatCSV})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Task UUID,Text,Start,End,Labels"))
	assert.Contains(t, lines[1], "John Smith")
}

func TestWrite_Config(t *testing.T) {
	t.Parallel()
	f := setup(t)

	out, n := f.write(t, ExportRequest{Format: export.FormatConfig})
	assert.Zero(t, n)
	assert.Contains(t, out, `<Label value="PERSON" background="#7D56F4" hotkey="p"/>`)
	assert.Contains(t, out, `<Label value="LOC" background="#7D56F4"/>`)
}

func TestWrite_JSONLReingests(t *testing.T) {
	t.Parallel()
	f := setup(t)

	out, _ := f.write(t, ExportRequest{Format: export.FormatJSONL})

	db := testutil.SetupTestDB(t)
	target := testutil.CreateTestProject(t, db, "copy")
	repo := database.NewRepository(db)
	res, err := upload.NewService(repo, upload.Options{}).Ingest(context.Background(), upload.IngestRequest{
		ProjectID: target.ID, Filename: "export.jsonl", Data: []byte(out),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Upload.TaskCount)
	assert.Equal(t, 2, res.Annotations)
	assert.Equal(t, []string{"PERSON", "LOC"}, res.Upload.Metadata.ExtractedLabels)
}
