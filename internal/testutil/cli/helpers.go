package cli

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
)

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}

// JSONData returns the "data" member of a successful --json response
func JSONData(t *testing.T, output string) any {
	t.Helper()

	result := ParseJSON(t, output)
	if ok, _ := result["success"].(bool); !ok {
		t.Fatalf("Expected success=true in JSON output: %s", output)
	}
	return result["data"]
}

// ParseQuietID parses the single id printed by --quiet
func ParseQuietID(t *testing.T, output string) int {
	t.Helper()

	id, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		t.Fatalf("Expected numeric ID, got: %q", output)
	}
	return id
}
