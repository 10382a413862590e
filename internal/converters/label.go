package converters

import (
	"github.com/kdpii/nerlabel/internal/models"
)

// LabelJSON is the output shape of a label
type LabelJSON struct {
	ID          int     `json:"id"`
	Value       string  `json:"value"`
	Background  string  `json:"background"`
	Hotkey      *string `json:"hotkey"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Example     string  `json:"example"`
	IsActive    bool    `json:"is_active"`
	SortOrder   int     `json:"sort_order"`
	ProjectID   *int    `json:"project_id"`
	IsGlobal    bool    `json:"is_global"`
}

func (l LabelJSON) GetID() int { return l.ID }

// LabelToJSON converts a label
func LabelToJSON(l *models.Label) LabelJSON {
	return LabelJSON{
		ID:          l.ID,
		Value:       l.Value,
		Background:  l.Background,
		Hotkey:      l.Hotkey,
		Category:    l.Category,
		Description: l.Description,
		Example:     l.Example,
		IsActive:    l.IsActive,
		SortOrder:   l.SortOrder,
		ProjectID:   l.ProjectID,
		IsGlobal:    l.IsGlobal(),
	}
}

// LabelsToJSON converts a slice of labels
func LabelsToJSON(labels []*models.Label) []LabelJSON {
	out := make([]LabelJSON, len(labels))
	for i, l := range labels {
		out[i] = LabelToJSON(l)
	}
	return out
}

// LabelUsageJSON is a label with its usage count
type LabelUsageJSON struct {
	LabelJSON
	UsageCount   int  `json:"usage_count"`
	CanBeDeleted bool `json:"can_be_deleted"`
}

// LabelUsagesToJSON converts label usage reports
func LabelUsagesToJSON(usages []*models.LabelUsage) []LabelUsageJSON {
	out := make([]LabelUsageJSON, len(usages))
	for i, u := range usages {
		out[i] = LabelUsageJSON{
			LabelJSON:    LabelToJSON(u.Label),
			UsageCount:   u.UsageCount,
			CanBeDeleted: u.CanBeDeleted,
		}
	}
	return out
}
