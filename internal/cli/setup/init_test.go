package setup

import (
	"os"
	"path/filepath"
	"testing"

	clitest "github.com/kdpii/nerlabel/internal/testutil/cli"
)

func TestInitCommandIsIdempotent(t *testing.T) {
	_, testApp := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, testApp, InitCmd(), []string{"--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	first := clitest.JSONData(t, output).(map[string]any)
	if first["created"] != true || first["project_name"] != "Default Project" {
		t.Errorf("Expected default project to be created, got %v", first)
	}

	output, err = clitest.ExecuteCLICommand(t, testApp, InitCmd(), []string{"--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second := clitest.JSONData(t, output).(map[string]any)
	if second["created"] != false || second["project_id"] != first["project_id"] {
		t.Errorf("Expected the same project on the second run, got %v", second)
	}
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	_, testApp := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, testApp, InitCmd(), []string{"--write-config", "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := filepath.Join(dir, "nerlabel", "config.yaml")
	data := clitest.JSONData(t, output).(map[string]any)
	if data["config_path"] != want {
		t.Errorf("Expected config_path %s, got %v", want, data["config_path"])
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("Expected config file to exist: %v", err)
	}

	// An existing file is left alone
	output, err = clitest.ExecuteCLICommand(t, testApp, InitCmd(), []string{"--write-config", "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if data := clitest.JSONData(t, output).(map[string]any); data["config_path"] != nil {
		t.Errorf("Expected no config write on second run, got %v", data["config_path"])
	}
}
