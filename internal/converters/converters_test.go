package converters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kdpii/nerlabel/internal/models"
)

func TestTaskToJSON_EmptyMetadata(t *testing.T) {
	task := models.NewTask(3, "hello")
	task.ID = 9

	out := TaskToJSON(task)
	if out.ID != 9 || out.ProjectID != 3 {
		t.Errorf("TaskToJSON() ids = %d/%d, want 9/3", out.ID, out.ProjectID)
	}
	if out.Metadata == nil {
		t.Error("Metadata should be an empty map, not nil")
	}
	if out.IdentifierType != string(models.IdentifierDefault) {
		t.Errorf("IdentifierType = %s, want %s", out.IdentifierType, models.IdentifierDefault)
	}
	if out.GetID() != 9 {
		t.Errorf("GetID() = %d, want 9", out.GetID())
	}
}

func TestAnnotationToJSON_EmptyCollections(t *testing.T) {
	a := models.NewAnnotation(1, 0, 5, "hello", nil)

	data, err := json.Marshal(AnnotationToJSON(a))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"labels", "related_annotations", "relationships"} {
		list, ok := decoded[key].([]any)
		if !ok || len(list) != 0 {
			t.Errorf("%s = %v, want []", key, decoded[key])
		}
	}
	if decoded["entity_id"] != nil {
		t.Errorf("entity_id = %v, want null", decoded["entity_id"])
	}
}

func TestLabelToJSON(t *testing.T) {
	hotkey := "p"
	pid := 4
	project := &models.Label{ID: 1, Value: "PERSON", Background: "#FF0000", Hotkey: &hotkey, ProjectID: &pid, IsActive: true}
	global := &models.Label{ID: 2, Value: "DATE", Background: "#00FF00"}

	out := LabelsToJSON([]*models.Label{project, global})
	if len(out) != 2 {
		t.Fatalf("LabelsToJSON() len = %d, want 2", len(out))
	}
	if out[0].IsGlobal || !out[1].IsGlobal {
		t.Errorf("IsGlobal = %v/%v, want false/true", out[0].IsGlobal, out[1].IsGlobal)
	}
	if *out[0].Hotkey != "p" || out[1].Hotkey != nil {
		t.Errorf("Hotkey not carried over: %v/%v", out[0].Hotkey, out[1].Hotkey)
	}

	usage := LabelUsagesToJSON([]*models.LabelUsage{{Label: project, UsageCount: 3}})
	if usage[0].Value != "PERSON" || usage[0].UsageCount != 3 || usage[0].CanBeDeleted {
		t.Errorf("LabelUsagesToJSON() = %+v", usage[0])
	}
}

func TestUploadToJSON(t *testing.T) {
	processed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	u := &models.UploadedFile{
		ID:          5,
		Filename:    "corpus.jsonl",
		Size:        2048,
		Status:      models.UploadCompleted,
		ProcessedAt: &processed,
		Metadata:    models.UploadMetadata{ExtractedLabels: []string{"PERSON"}},
	}

	out := UploadToJSON(u)
	if out.SizeHuman != "2.0 KiB" {
		t.Errorf("SizeHuman = %s, want 2.0 KiB", out.SizeHuman)
	}
	if out.Status != "completed" {
		t.Errorf("Status = %s, want completed", out.Status)
	}
	if out.DataIDs == nil || len(out.ExtractedLabels) != 1 {
		t.Errorf("metadata lists = %v/%v", out.DataIDs, out.ExtractedLabels)
	}
}

func TestStatsToJSON_NilDistribution(t *testing.T) {
	p := ProjectStatsToJSON(&models.ProjectStats{ProjectID: 2, TaskCount: 4})
	if p.LabelDistribution == nil {
		t.Error("project label distribution should be an empty map")
	}
	g := GlobalStatsToJSON(&models.GlobalStats{TotalProjects: 1})
	if g.LabelDistribution == nil || g.TotalProjects != 1 {
		t.Errorf("GlobalStatsToJSON() = %+v", g)
	}
}
