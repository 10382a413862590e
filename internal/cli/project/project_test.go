package project

import (
	"strconv"
	"strings"
	"testing"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/testutil"
	clitest "github.com/kdpii/nerlabel/internal/testutil/cli"
)

// TestCreateProjectCommand tests the project create command
func TestCreateProjectCommand(t *testing.T) {
	_, testApp := clitest.SetupCLITest(t)

	tests := []struct {
		name      string
		args      []string
		shouldErr bool
		checkFunc func(t *testing.T, output string)
	}{
		{
			name: "create project with name only",
			args: []string{"--name", "My Project", "--quiet"},
			checkFunc: func(t *testing.T, output string) {
				if id := clitest.ParseQuietID(t, output); id <= 0 {
					t.Errorf("Expected positive project ID, got: %d", id)
				}
			},
		},
		{
			name: "create project with JSON output",
			args: []string{"--name", "JSON Project", "--allow-overlapping=false", "--json"},
			checkFunc: func(t *testing.T, output string) {
				data := clitest.JSONData(t, output).(map[string]any)
				if data["name"] != "JSON Project" {
					t.Errorf("Expected name 'JSON Project', got %v", data["name"])
				}
				if data["allow_overlapping_annotations"] != false {
					t.Errorf("Expected allow_overlapping_annotations=false, got %v", data["allow_overlapping_annotations"])
				}
			},
		},
		{
			name: "create project with human-readable output",
			args: []string{"--name", "Human Project", "--description", "Test"},
			checkFunc: func(t *testing.T, output string) {
				if !strings.Contains(output, "Human Project") {
					t.Errorf("Output missing project name")
				}
			},
		},
		{
			name:      "create project missing name",
			args:      []string{},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := clitest.ExecuteCLICommand(t, testApp, CreateCmd(), tt.args)

			if tt.shouldErr && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if !tt.shouldErr && tt.checkFunc != nil {
				tt.checkFunc(t, output)
			}
		})
	}
}

func TestCreateProjectMissingNameIsUsageError(t *testing.T) {
	_, testApp := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, testApp, CreateCmd(), []string{"--json"})
	if code := cli.ExitCode(err); code != cli.ExitUsage {
		t.Errorf("Expected exit code %d, got %d", cli.ExitUsage, code)
	}
}

// TestListProjectCommand tests the project list command
func TestListProjectCommand(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)

	testutil.CreateTestProject(t, db, "Project 1")
	testutil.CreateTestProject(t, db, "Project 2")
	testutil.CreateTestProject(t, db, "Project 3")

	output, err := clitest.ExecuteCLICommand(t, testApp, ListCmd(), []string{"--quiet"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 projects, got %d", len(lines))
	}

	output, err = clitest.ExecuteCLICommand(t, testApp, ListCmd(), []string{"--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if projects := clitest.JSONData(t, output).([]any); len(projects) != 3 {
		t.Errorf("Expected 3 projects in JSON, got %d", len(projects))
	}

	output, err = clitest.ExecuteCLICommand(t, testApp, ListCmd(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "Found 3 projects") {
		t.Errorf("Expected project count in output, got: %s", output)
	}
}

func TestShowProjectByName(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)
	p := testutil.CreateTestProject(t, db, "Named")

	output, err := clitest.ExecuteCLICommand(t, testApp, ShowCmd(), []string{"Named", "--quiet"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id := clitest.ParseQuietID(t, output); id != p.ID {
		t.Errorf("Expected project %d, got %d", p.ID, id)
	}
}

func TestShowProjectNotFound(t *testing.T) {
	_, testApp := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, testApp, ShowCmd(), []string{"999", "--json"})
	if code := cli.ExitCode(err); code != cli.ExitNotFound {
		t.Errorf("Expected exit code %d, got %d", cli.ExitNotFound, code)
	}
	result := clitest.ParseJSON(t, output)
	if result["success"] != false {
		t.Errorf("Expected success=false, got %v", result["success"])
	}
	errData := result["error"].(map[string]any)
	if errData["code"] != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND, got %v", errData["code"])
	}
}

func TestUpdateProjectCommand(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)
	p := testutil.CreateTestProject(t, db, "Before")
	id := strconv.Itoa(p.ID)

	output, err := clitest.ExecuteCLICommand(t, testApp, UpdateCmd(),
		[]string{id, "--name", "After", "--require-all-labels", "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data := clitest.JSONData(t, output).(map[string]any)
	if data["name"] != "After" {
		t.Errorf("Expected name After, got %v", data["name"])
	}
	if data["require_all_labels"] != true {
		t.Errorf("Expected require_all_labels=true, got %v", data["require_all_labels"])
	}
	if data["allow_overlapping_annotations"] != true {
		t.Errorf("Unchanged flag should keep its value, got %v", data["allow_overlapping_annotations"])
	}

	_, err = clitest.ExecuteCLICommand(t, testApp, UpdateCmd(), []string{id})
	if code := cli.ExitCode(err); code != cli.ExitUsage {
		t.Errorf("Expected usage error with no flags, got exit code %d", code)
	}
}

func TestDeleteProjectCommand(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)
	p := testutil.CreateTestProject(t, db, "Doomed")
	id := strconv.Itoa(p.ID)

	if _, err := clitest.ExecuteCLICommand(t, testApp, DeleteCmd(), []string{id, "--force"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, err := clitest.ExecuteCLICommand(t, testApp, ShowCmd(), []string{id})
	if code := cli.ExitCode(err); code != cli.ExitNotFound {
		t.Errorf("Expected deleted project to be not found, got exit code %d", code)
	}
}

func TestProjectStatsCommand(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)
	p := testutil.CreateTestProject(t, db, "Stats")
	task := testutil.CreateTestTask(t, db, p.ID, "Alice met Bob")
	testutil.CreateTestTask(t, db, p.ID, "Nothing here")
	testutil.CreateTestAnnotation(t, db, task, 0, 5, "PER")
	testutil.CreateTestAnnotation(t, db, task, 10, 13, "PER")

	output, err := clitest.ExecuteCLICommand(t, testApp, StatsCmd(), []string{"--project", "Stats", "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data := clitest.JSONData(t, output).(map[string]any)
	if data["task_count"] != float64(2) {
		t.Errorf("Expected task_count 2, got %v", data["task_count"])
	}
	if data["annotation_count"] != float64(2) {
		t.Errorf("Expected annotation_count 2, got %v", data["annotation_count"])
	}
	dist := data["label_distribution"].(map[string]any)
	if dist["PER"] != float64(2) {
		t.Errorf("Expected PER=2, got %v", dist["PER"])
	}
	if data["project_name"] != "Stats" {
		t.Errorf("Expected project_name Stats, got %v", data["project_name"])
	}
}

func TestResetAndDuplicateCommands(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)
	p := testutil.CreateTestProject(t, db, "Source")
	task := testutil.CreateTestTask(t, db, p.ID, "Alice met Bob")
	testutil.CreateTestAnnotation(t, db, task, 0, 5, "PER")
	id := strconv.Itoa(p.ID)

	output, err := clitest.ExecuteCLICommand(t, testApp, DuplicateCmd(), []string{id, "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	dup := clitest.JSONData(t, output).(map[string]any)
	if dup["name"] != "Source (Copy)" {
		t.Errorf("Expected duplicate name 'Source (Copy)', got %v", dup["name"])
	}

	output, err = clitest.ExecuteCLICommand(t, testApp, ResetCmd(), []string{id, "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	reset := clitest.JSONData(t, output).(map[string]any)
	if reset["annotations_deleted"] != float64(1) {
		t.Errorf("Expected 1 annotation deleted, got %v", reset["annotations_deleted"])
	}
}
