package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/kdpii/nerlabel/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the full schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestDBFile creates a file-based database for persistence tests
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "nerlabel.db")
	db, err := InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db, path
}

// ============================================================================
// FIXTURES
// ============================================================================

func createTestProject(t *testing.T, repo *Repository, name string) *models.Project {
	t.Helper()
	p := &models.Project{Name: name, IsActive: true, AllowOverlappingAnnotations: true}
	if err := repo.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return p
}

func createTestTask(t *testing.T, repo *Repository, projectID int, text string) *models.Task {
	t.Helper()
	task := models.NewTask(projectID, text)
	if err := repo.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return task
}

func createTestAnnotation(t *testing.T, repo *Repository, task *models.Task, start, end int, labels ...string) *models.Annotation {
	t.Helper()
	text := string([]rune(task.Text)[start:end])
	a := models.NewAnnotation(task.ID, start, end, text, labels)
	if err := repo.CreateAnnotation(context.Background(), a); err != nil {
		t.Fatalf("Failed to create annotation: %v", err)
	}
	return a
}

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func stringPtr(v string) *string { return &v }
