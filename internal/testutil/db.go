package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/models"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const TestAppKey ContextKey = "testApp"

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	// Save original stdout
	oldStdout := os.Stdout

	// Create pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	// Replace stdout with pipe writer
	os.Stdout = w

	// Channel to collect output
	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// Execute function
	fn()

	// Close writer and restore stdout
	_ = w.Close()
	os.Stdout = oldStdout

	// Get captured output
	return <-outC
}

// SetupTestDB creates an in-memory database with full schema.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ============================================================================
// FIXTURES
// ============================================================================

// CreateTestProject inserts an active project that allows overlaps
func CreateTestProject(t *testing.T, db *sql.DB, name string) *models.Project {
	t.Helper()
	p := &models.Project{Name: name, IsActive: true, AllowOverlappingAnnotations: true}
	if err := database.NewRepository(db).CreateProject(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p
}

// CreateTestTask inserts a task with the given text
func CreateTestTask(t *testing.T, db *sql.DB, projectID int, text string) *models.Task {
	t.Helper()
	task := models.NewTask(projectID, text)
	if err := database.NewRepository(db).CreateTask(context.Background(), task); err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task
}

// CreateTestAnnotation inserts an annotation whose text is sliced from the task
func CreateTestAnnotation(t *testing.T, db *sql.DB, task *models.Task, start, end int, labels ...string) *models.Annotation {
	t.Helper()
	text := string([]rune(task.Text)[start:end])
	a := models.NewAnnotation(task.ID, start, end, text, labels)
	if err := database.NewRepository(db).CreateAnnotation(context.Background(), a); err != nil {
		t.Fatalf("Failed to create test annotation: %v", err)
	}
	return a
}

// CreateTestLabel inserts an active label. A nil projectID makes it global.
func CreateTestLabel(t *testing.T, db *sql.DB, projectID *int, value, hotkey string) *models.Label {
	t.Helper()
	l := &models.Label{Value: value, Background: models.DefaultLabelColor, IsActive: true, ProjectID: projectID}
	if hotkey != "" {
		l.Hotkey = &hotkey
	}
	if err := database.NewRepository(db).CreateLabel(context.Background(), l); err != nil {
		t.Fatalf("Failed to create test label: %v", err)
	}
	return l
}
