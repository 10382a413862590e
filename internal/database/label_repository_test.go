package database

import (
	"context"
	"errors"
	"testing"

	"github.com/kdpii/nerlabel/internal/models"
)

func createTestLabel(t *testing.T, repo *Repository, projectID *int, value, hotkey string, order int) *models.Label {
	t.Helper()
	l := &models.Label{Value: value, Background: "#7D56F4", IsActive: true, SortOrder: order, ProjectID: projectID}
	if hotkey != "" {
		l.Hotkey = stringPtr(hotkey)
	}
	if err := repo.CreateLabel(context.Background(), l); err != nil {
		t.Fatalf("Failed to create label: %v", err)
	}
	return l
}

func TestLabelScopes(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "labels")

	global := createTestLabel(t, repo, nil, "PERSON", "1", 1)
	local := createTestLabel(t, repo, &p.ID, "PERSON", "1", 2)
	createTestLabel(t, repo, &p.ID, "LOCATION", "2", 1)

	got, err := repo.GetLabelByValue(ctx, nil, "PERSON")
	if err != nil {
		t.Fatalf("Failed to get global label: %v", err)
	}
	if got.ID != global.ID || !got.IsGlobal() {
		t.Errorf("Expected global label, got %+v", got)
	}

	got, err = repo.GetLabelByValue(ctx, &p.ID, "PERSON")
	if err != nil {
		t.Fatalf("Failed to get project label: %v", err)
	}
	if got.ID != local.ID || got.ProjectID == nil || *got.ProjectID != p.ID {
		t.Errorf("Expected project label, got %+v", got)
	}

	got, err = repo.GetLabelByHotkey(ctx, &p.ID, "2")
	if err != nil {
		t.Fatalf("Failed to get label by hotkey: %v", err)
	}
	if got.Value != "LOCATION" {
		t.Errorf("Expected LOCATION, got %s", got.Value)
	}

	tests := []struct {
		name   string
		filter LabelFilter
		want   []string
	}{
		{"global only", LabelFilter{GlobalOnly: true}, []string{"PERSON"}},
		{"project", LabelFilter{ProjectID: &p.ID}, []string{"LOCATION", "PERSON"}},
		{"project with global", LabelFilter{ProjectID: &p.ID, IncludeGlobal: true}, []string{"LOCATION", "PERSON", "PERSON"}},
		{"all", LabelFilter{}, []string{"LOCATION", "PERSON", "PERSON"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := repo.ListLabels(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Failed to list labels: %v", err)
			}
			if len(labels) != len(tt.want) {
				t.Fatalf("Expected %d labels, got %d", len(tt.want), len(labels))
			}
			for i, v := range tt.want {
				if labels[i].Value != v {
					t.Errorf("Label %d: expected %s, got %s", i, v, labels[i].Value)
				}
			}
		})
	}
}

func TestLabelUniqueness(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "unique")

	createTestLabel(t, repo, nil, "PERSON", "1", 1)

	dupValue := &models.Label{Value: "PERSON", Background: "#000000", IsActive: true}
	if err := repo.CreateLabel(ctx, dupValue); err == nil {
		t.Error("Expected duplicate global value to be rejected")
	}

	dupHotkey := &models.Label{Value: "ORG", Background: "#000000", Hotkey: stringPtr("1"), IsActive: true}
	if err := repo.CreateLabel(ctx, dupHotkey); err == nil {
		t.Error("Expected duplicate global hotkey to be rejected")
	}

	// Labels without hotkeys never collide
	createTestLabel(t, repo, &p.ID, "A", "", 1)
	createTestLabel(t, repo, &p.ID, "B", "", 2)
}

func TestLabelUpdateAndDelete(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	p := createTestProject(t, repo, "update")

	l := createTestLabel(t, repo, &p.ID, "PERSON", "1", 1)
	createTestLabel(t, repo, &p.ID, "ORG", "2", 7)

	l.IsActive = false
	l.Hotkey = nil
	l.Description = "people"
	if err := repo.UpdateLabel(ctx, l); err != nil {
		t.Fatalf("Failed to update label: %v", err)
	}
	got, err := repo.GetLabelByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("Failed to get label: %v", err)
	}
	if got.IsActive || got.Hotkey != nil || got.Description != "people" {
		t.Errorf("Update not persisted: %+v", got)
	}

	active, err := repo.ListLabels(ctx, LabelFilter{ProjectID: &p.ID, ActiveOnly: true})
	if err != nil {
		t.Fatalf("Failed to list labels: %v", err)
	}
	if len(active) != 1 || active[0].Value != "ORG" {
		t.Errorf("Expected only ORG active, got %+v", active)
	}

	maxOrder, err := repo.MaxLabelSortOrder(ctx, &p.ID)
	if err != nil {
		t.Fatalf("Failed to read max sort order: %v", err)
	}
	if maxOrder != 7 {
		t.Errorf("Expected max sort order 7, got %d", maxOrder)
	}

	if err := repo.DeleteLabel(ctx, l.ID); err != nil {
		t.Fatalf("Failed to delete label: %v", err)
	}
	if _, err := repo.GetLabelByID(ctx, l.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	n, err := repo.DeleteLabelsByScope(ctx, &p.ID)
	if err != nil {
		t.Fatalf("Failed to clear labels: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 label cleared, got %d", n)
	}
}
