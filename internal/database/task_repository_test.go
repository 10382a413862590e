package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kdpii/nerlabel/internal/models"
)

func TestCreateAndGetTask(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "tasks")

	task := models.NewTask(p.ID, "Patient Ana was seen in Seoul")
	task.OriginalFilename = "notes.txt"
	task.LineNumber = 3
	task.Metadata = map[string]any{"data_id": "d-1"}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	byID, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	byUUID, err := repo.GetTaskByUUID(ctx, task.UUID)
	if err != nil {
		t.Fatalf("Failed to get task by uuid: %v", err)
	}
	if byID.ID != byUUID.ID {
		t.Errorf("Lookups disagree: %d vs %d", byID.ID, byUUID.ID)
	}
	if byID.Text != task.Text || byID.OriginalFilename != "notes.txt" || byID.LineNumber != 3 {
		t.Errorf("Unexpected task: %+v", byID)
	}
	if byID.IdentifierType != models.IdentifierDefault {
		t.Errorf("Expected default identifier type, got %q", byID.IdentifierType)
	}
	if byID.Metadata["data_id"] != "d-1" {
		t.Errorf("Metadata not round-tripped: %v", byID.Metadata)
	}
	if byID.IsCompleted || byID.CompletionTime != nil {
		t.Error("New task should not be completed")
	}

	if _, err := repo.GetTaskByUUID(ctx, "nope"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTaskCompletionRoundTrip(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "completion")
	task := createTestTask(t, repo, p.ID, "text")

	task.MarkCompleted(time.Now(), stringPtr("annotator-1"))
	if err := repo.UpdateTaskCompletion(ctx, task); err != nil {
		t.Fatalf("Failed to complete task: %v", err)
	}

	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if !got.IsCompleted || got.CompletionTime == nil {
		t.Fatal("Expected completed task with completion time")
	}
	if got.AnnotatorID == nil || *got.AnnotatorID != "annotator-1" {
		t.Errorf("Expected annotator to be stored, got %v", got.AnnotatorID)
	}

	got.MarkIncomplete()
	if err := repo.UpdateTaskCompletion(ctx, got); err != nil {
		t.Fatalf("Failed to reopen task: %v", err)
	}
	got, err = repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if got.IsCompleted || got.CompletionTime != nil {
		t.Error("Expected incomplete task without completion time")
	}
}

func TestCompletionTimeConstraint(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "constraint")
	task := createTestTask(t, repo, p.ID, "text")

	task.IsCompleted = true
	task.CompletionTime = nil
	if err := repo.UpdateTaskCompletion(ctx, task); err == nil {
		t.Error("Expected CHECK constraint to reject completed task without completion time")
	}
}

func TestUpdateTasksCompletion(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "bulk")
	other := createTestProject(t, repo, "other")
	t1 := createTestTask(t, repo, p.ID, "one")
	t2 := createTestTask(t, repo, p.ID, "two")
	createTestTask(t, repo, p.ID, "three")
	createTestTask(t, repo, other.ID, "elsewhere")

	n, err := repo.UpdateTasksCompletion(ctx, BulkCompletion{
		ProjectID: &p.ID, TaskIDs: []int{t1.ID, t2.ID}, Completed: true, At: time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to bulk complete: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 tasks changed, got %d", n)
	}

	// Already-complete tasks are not counted again
	n, err = repo.UpdateTasksCompletion(ctx, BulkCompletion{ProjectID: &p.ID, Completed: true, At: time.Now()})
	if err != nil {
		t.Fatalf("Failed to bulk complete: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 task changed, got %d", n)
	}

	total, completed, err := repo.CountTasks(ctx, &p.ID)
	if err != nil {
		t.Fatalf("Failed to count tasks: %v", err)
	}
	if total != 3 || completed != 3 {
		t.Errorf("Expected 3/3, got %d/%d", completed, total)
	}

	total, completed, err = repo.CountTasks(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to count tasks: %v", err)
	}
	if total != 4 || completed != 3 {
		t.Errorf("Expected 3/4 globally, got %d/%d", completed, total)
	}

	n, err = repo.UpdateTasksCompletion(ctx, BulkCompletion{ProjectID: &p.ID, Completed: false})
	if err != nil {
		t.Fatalf("Failed to bulk reopen: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 tasks reopened, got %d", n)
	}
}

func TestListTasksAndSummaries(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "summaries")

	t1 := createTestTask(t, repo, p.ID, "John Smith lives in Boston")
	t2 := createTestTask(t, repo, p.ID, "nothing here")
	createTestAnnotation(t, repo, t1, 0, 10, "PERSON")
	createTestAnnotation(t, repo, t1, 0, 10, "NAME")
	createTestAnnotation(t, repo, t1, 20, 26, "LOCATION")

	summaries, err := repo.ListTaskSummaries(ctx, models.TaskFilter{ProjectID: &p.ID})
	if err != nil {
		t.Fatalf("Failed to list summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != t1.ID || summaries[0].AnnotationCount != 3 || summaries[0].EntityCount != 2 {
		t.Errorf("Unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].ID != t2.ID || summaries[1].AnnotationCount != 0 {
		t.Errorf("Unexpected second summary: %+v", summaries[1])
	}

	page, err := repo.ListTasks(ctx, models.TaskFilter{ProjectID: &p.ID, Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("Failed to list tasks: %v", err)
	}
	if len(page) != 1 || page[0].ID != t2.ID {
		t.Errorf("Expected second task on page, got %+v", page)
	}

	open, err := repo.ListTasks(ctx, models.TaskFilter{ProjectID: &p.ID, IsCompleted: boolPtr(true)})
	if err != nil {
		t.Fatalf("Failed to list tasks: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("Expected no completed tasks, got %d", len(open))
	}
}

func TestDeleteTaskCascadesAnnotations(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "delete")
	task := createTestTask(t, repo, p.ID, "John Smith")
	a := createTestAnnotation(t, repo, task, 0, 4, "PERSON")

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}
	if _, err := repo.GetAnnotationByID(ctx, a.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected annotation to be deleted, got %v", err)
	}
}

func TestSetTaskIdentifierType(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "identifier")
	task := createTestTask(t, repo, p.ID, "text")

	if err := repo.SetTaskIdentifierType(ctx, task.ID, models.IdentifierQuasi); err != nil {
		t.Fatalf("Failed to set identifier type: %v", err)
	}
	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if got.IdentifierType != models.IdentifierQuasi {
		t.Errorf("Expected quasi, got %q", got.IdentifierType)
	}

	if err := repo.SetTaskIdentifierType(ctx, task.ID, "bogus"); err == nil {
		t.Error("Expected CHECK constraint to reject unknown identifier type")
	}
}
