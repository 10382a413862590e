package upload

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/testutil"
	clitest "github.com/kdpii/nerlabel/internal/testutil/cli"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestUploadFileCommand(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)
	p := testutil.CreateTestProject(t, db, "Corpus")
	projectFlag := strconv.Itoa(p.ID)

	path := writeFile(t, "notes.txt", "first line\n\nsecond line\n")
	output, err := clitest.ExecuteCLICommand(t, testApp, FileCmd(), []string{path, "--project", projectFlag, "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data := clitest.JSONData(t, output).(map[string]any)
	upload := data["upload"].(map[string]any)
	if upload["filename"] != "notes.txt" {
		t.Errorf("Expected base filename, got %v", upload["filename"])
	}
	if upload["status"] != "completed" || upload["task_count"] != float64(2) {
		t.Errorf("Unexpected upload record: %v", upload)
	}
	if upload["size_human"] == "" {
		t.Errorf("Expected human readable size")
	}

	jsonl := writeFile(t, "dialogs.jsonl",
		`{"text": "John lives in Seoul", "entities": [{"entity_type": "PERSON", "start_offset": 0, "end_offset": 4, "span_text": "John"}]}`+"\n")
	output, err = clitest.ExecuteCLICommand(t, testApp, FileCmd(), []string{jsonl, "--project", projectFlag, "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data = clitest.JSONData(t, output).(map[string]any)
	if data["annotations"] != float64(1) {
		t.Errorf("Expected one pre-annotation, got %v", data["annotations"])
	}

	output, err = clitest.ExecuteCLICommand(t, testApp, ListCmd(), []string{"--project", projectFlag, "--quiet"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	ids := strings.Fields(output)
	if len(ids) != 2 {
		t.Fatalf("Expected 2 uploads, got %q", output)
	}

	output, err = clitest.ExecuteCLICommand(t, testApp, ShowCmd(), []string{ids[0]})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "dialogs.jsonl") {
		t.Errorf("Expected newest upload first, got: %s", output)
	}
}

func TestUploadFileRejected(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)
	p := testutil.CreateTestProject(t, db, "Reject")
	projectFlag := strconv.Itoa(p.ID)

	path := writeFile(t, "report.pdf", "%PDF")
	output, err := clitest.ExecuteCLICommand(t, testApp, FileCmd(), []string{path, "--project", projectFlag, "--json"})
	if code := cli.ExitCode(err); code != cli.ExitDataErr {
		t.Fatalf("Expected data error exit code, got %d", code)
	}
	errData := clitest.ParseJSON(t, output)["error"].(map[string]any)
	if errData["code"] != "UNSUPPORTED_FILE_TYPE" {
		t.Errorf("Expected UNSUPPORTED_FILE_TYPE, got %v", errData["code"])
	}

	output, err = clitest.ExecuteCLICommand(t, testApp, ListCmd(), []string{"--project", projectFlag, "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if uploads := clitest.JSONData(t, output).([]any); len(uploads) != 0 {
		t.Errorf("Rejected file must not leave an upload record, got %d", len(uploads))
	}

	_, err = clitest.ExecuteCLICommand(t, testApp, ShowCmd(), []string{"abc"})
	if code := cli.ExitCode(err); code != cli.ExitUsage {
		t.Errorf("Expected usage error for non-numeric id, got %d", code)
	}
}
