package label

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/models"
)

// SeedEntry is one label of a vocabulary file
type SeedEntry struct {
	Value       string `json:"value" yaml:"value"`
	Background  string `json:"background,omitempty" yaml:"background,omitempty"`
	Hotkey      string `json:"hotkey,omitempty" yaml:"hotkey,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SeedRequest loads a vocabulary into a scope.
// Entries keep their file order; the first nine get hotkeys 1-9 unless
// KeepHotkeys is set, in which case each entry's own hotkey is used.
type SeedRequest struct {
	ProjectID   *int
	Entries     []SeedEntry
	Clear       bool
	KeepHotkeys bool
}

// SeedResult summarizes a seed run
type SeedResult struct {
	Created  []*models.Label
	Existing int
	Cleared  int
}

// ParseSeedFile reads a vocabulary from YAML or JSON. Both a bare list and
// a {"labels": [...]} document are accepted, and list items may be plain
// strings.
func ParseSeedFile(filename string, data []byte) ([]SeedEntry, error) {
	var doc any
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeedFile, err)
	}

	if m, ok := doc.(map[string]any); ok {
		doc = m["labels"]
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of labels", ErrInvalidSeedFile)
	}

	entries := make([]SeedEntry, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			entries = append(entries, SeedEntry{Value: v})
		case map[string]any:
			entries = append(entries, SeedEntry{
				Value:       stringField(v, "value"),
				Background:  stringField(v, "background"),
				Hotkey:      stringField(v, "hotkey"),
				Category:    stringField(v, "category"),
				Description: stringField(v, "description"),
			})
		default:
			return nil, fmt.Errorf("%w: entry %d is neither a string nor an object", ErrInvalidSeedFile, i+1)
		}
	}
	return entries, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return ""
}

// Seed gets or creates every entry in the scope, optionally clearing the
// scope first. Existing labels are left untouched.
func (s *service) Seed(ctx context.Context, req SeedRequest) (*SeedResult, error) {
	if req.ProjectID != nil && *req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}

	res := &SeedResult{}
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		res.Created, res.Existing, res.Cleared = nil, 0, 0

		if req.ProjectID != nil {
			if _, err := tx.GetProjectByID(ctx, *req.ProjectID); err != nil {
				return err
			}
		}
		if req.Clear {
			n, err := tx.DeleteLabelsByScope(ctx, req.ProjectID)
			if err != nil {
				return err
			}
			res.Cleared = n
		}

		for i, e := range req.Entries {
			value, err := validateValue(e.Value)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}

			_, err = tx.GetLabelByValue(ctx, req.ProjectID, value)
			if err == nil {
				res.Existing++
				continue
			}
			if !errors.Is(err, models.ErrNotFound) {
				return err
			}

			l := &models.Label{
				Value:       value,
				Background:  models.SeedLabelColor,
				Category:    e.Category,
				Description: e.Description,
				IsActive:    true,
				SortOrder:   i + 1,
				ProjectID:   req.ProjectID,
			}
			if e.Background != "" {
				l.Background = models.NormalizeColor(e.Background)
			}
			if l.Description == "" {
				l.Description = "label for " + value
			}

			hotkey := e.Hotkey
			if !req.KeepHotkeys {
				hotkey = ""
				if i < len(models.SeedHotkeys) {
					hotkey = string(models.SeedHotkeys[i])
				}
			}
			if hotkey != "" {
				// a hotkey already taken in the scope is dropped
				if _, err := tx.GetLabelByHotkey(ctx, req.ProjectID, hotkey); errors.Is(err, models.ErrNotFound) {
					l.Hotkey = &hotkey
				} else if err != nil {
					return err
				}
			}

			if err := l.Validate(); err != nil {
				return fmt.Errorf("entry %d (%s): %w", i+1, value, err)
			}
			if err := tx.CreateLabel(ctx, l); err != nil {
				return err
			}
			res.Created = append(res.Created, l)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed labels: %w", err)
	}

	logSeed(req.ProjectID, res)
	return res, nil
}

// EnsureLabels creates the values missing from a project's vocabulary
// inside tx, cycling through models.LabelPalette for colors. Values already
// defined for the project or globally are skipped. It returns the labels
// it created.
func EnsureLabels(ctx context.Context, tx database.DataStore, projectID int, values []string) ([]*models.Label, error) {
	pid := projectID
	known, err := tx.ListLabels(ctx, database.LabelFilter{ProjectID: &pid, IncludeGlobal: true})
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(known))
	for _, l := range known {
		have[l.Value] = true
	}

	order, err := tx.MaxLabelSortOrder(ctx, &pid)
	if err != nil {
		return nil, err
	}

	var created []*models.Label
	for _, v := range values {
		v, err := validateValue(v)
		if err != nil || have[v] {
			continue
		}
		order++
		l := &models.Label{
			Value:       v,
			Background:  models.LabelPalette[len(created)%len(models.LabelPalette)],
			Description: "label for " + v,
			IsActive:    true,
			SortOrder:   order,
			ProjectID:   &pid,
		}
		if err := tx.CreateLabel(ctx, l); err != nil {
			return nil, fmt.Errorf("failed to create label %q: %w", v, err)
		}
		have[v] = true
		created = append(created, l)
	}
	return created, nil
}
