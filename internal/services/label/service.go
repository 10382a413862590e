package label

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/export"
	"github.com/kdpii/nerlabel/internal/models"
)

// Service defines all label-related business operations
type Service interface {
	// Read operations
	GetLabel(ctx context.Context, id int) (*models.Label, error)
	ListLabels(ctx context.Context, req ListLabelsRequest) ([]*models.Label, error)
	GetUsage(ctx context.Context, id int) (*models.LabelUsage, error)
	ListUsage(ctx context.Context, req ListLabelsRequest) ([]*models.LabelUsage, error)

	// Write operations
	CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error)
	UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)
	DeleteLabel(ctx context.Context, id int) error
	SetActive(ctx context.Context, id int, active bool) (*models.Label, error)

	// Vocabulary loading
	Seed(ctx context.Context, req SeedRequest) (*SeedResult, error)
	ImportConfig(ctx context.Context, projectID *int, r io.Reader) (*SeedResult, error)
}

// CreateLabelRequest encapsulates data for creating a label.
// A nil ProjectID creates a global label.
type CreateLabelRequest struct {
	ProjectID   *int
	Value       string
	Background  string // Optional: empty means models.DefaultLabelColor
	Hotkey      string // Optional
	Category    string
	Description string
	Example     string
	SortOrder   *int // Optional: nil appends after the scope's last label
}

// UpdateLabelRequest encapsulates data for updating a label
// Fields with pointers are optional - nil means don't update
type UpdateLabelRequest struct {
	ID          int
	Value       *string
	Background  *string
	Hotkey      *string // Empty string clears the hotkey
	Category    *string
	Description *string
	Example     *string
	SortOrder   *int
}

// ListLabelsRequest selects a label scope
type ListLabelsRequest struct {
	ProjectID     *int
	IncludeGlobal bool
	GlobalOnly    bool
	ActiveOnly    bool
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new label service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// ============================================================================
// Read operations
// ============================================================================

func (s *service) GetLabel(ctx context.Context, id int) (*models.Label, error) {
	if id <= 0 {
		return nil, ErrInvalidLabelID
	}
	return s.repo.GetLabelByID(ctx, id)
}

func (s *service) ListLabels(ctx context.Context, req ListLabelsRequest) ([]*models.Label, error) {
	if req.ProjectID != nil && *req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.ListLabels(ctx, database.LabelFilter(req))
}

// GetUsage counts the annotations whose labels contain the label's value.
// A project label is counted within its project, a global label everywhere.
func (s *service) GetUsage(ctx context.Context, id int) (*models.LabelUsage, error) {
	l, err := s.GetLabel(ctx, id)
	if err != nil {
		return nil, err
	}
	payloads, err := s.repo.ListLabelPayloads(ctx, l.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to scan label usage: %w", err)
	}
	return usage(l, payloads), nil
}

// ListUsage reports usage for every label in a scope
func (s *service) ListUsage(ctx context.Context, req ListLabelsRequest) ([]*models.LabelUsage, error) {
	labels, err := s.ListLabels(ctx, req)
	if err != nil {
		return nil, err
	}

	// payloads are loaded once per scope
	cache := make(map[int][]string)
	result := make([]*models.LabelUsage, 0, len(labels))
	for _, l := range labels {
		key := 0
		if l.ProjectID != nil {
			key = *l.ProjectID
		}
		payloads, ok := cache[key]
		if !ok {
			if payloads, err = s.repo.ListLabelPayloads(ctx, l.ProjectID); err != nil {
				return nil, fmt.Errorf("failed to scan label usage: %w", err)
			}
			cache[key] = payloads
		}
		result = append(result, usage(l, payloads))
	}
	return result, nil
}

func usage(l *models.Label, payloads []string) *models.LabelUsage {
	count := 0
	for _, raw := range payloads {
		var labels []string
		if err := json.Unmarshal([]byte(raw), &labels); err != nil {
			continue
		}
		for _, v := range labels {
			if v == l.Value {
				count++
				break
			}
		}
	}
	return &models.LabelUsage{Label: l, UsageCount: count, CanBeDeleted: count == 0}
}

// ============================================================================
// Write operations
// ============================================================================

// CreateLabel validates and stores a label in its scope
func (s *service) CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error) {
	if req.ProjectID != nil && *req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	value, err := validateValue(req.Value)
	if err != nil {
		return nil, err
	}

	l := &models.Label{
		Value:       value,
		Background:  models.DefaultLabelColor,
		Category:    req.Category,
		Description: req.Description,
		Example:     req.Example,
		IsActive:    true,
		ProjectID:   req.ProjectID,
	}
	if req.Background != "" {
		l.Background = models.NormalizeColor(req.Background)
	}
	if req.Hotkey != "" {
		hk := req.Hotkey
		l.Hotkey = &hk
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if l.ProjectID != nil {
			if _, err := tx.GetProjectByID(ctx, *l.ProjectID); err != nil {
				return err
			}
		}
		if err := checkUnique(ctx, tx, l); err != nil {
			return err
		}
		if req.SortOrder != nil {
			l.SortOrder = *req.SortOrder
		} else {
			last, err := tx.MaxLabelSortOrder(ctx, l.ProjectID)
			if err != nil {
				return err
			}
			l.SortOrder = last + 1
		}
		return tx.CreateLabel(ctx, l)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return l, nil
}

// UpdateLabel applies the non-nil fields of req
func (s *service) UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidLabelID
	}

	var result *models.Label
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		l, err := tx.GetLabelByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.Value != nil {
			if l.Value, err = validateValue(*req.Value); err != nil {
				return err
			}
		}
		if req.Background != nil {
			l.Background = models.NormalizeColor(*req.Background)
		}
		if req.Hotkey != nil {
			if *req.Hotkey == "" {
				l.Hotkey = nil
			} else {
				hk := *req.Hotkey
				l.Hotkey = &hk
			}
		}
		if req.Category != nil {
			l.Category = *req.Category
		}
		if req.Description != nil {
			l.Description = *req.Description
		}
		if req.Example != nil {
			l.Example = *req.Example
		}
		if req.SortOrder != nil {
			l.SortOrder = *req.SortOrder
		}

		if err := l.Validate(); err != nil {
			return err
		}
		if err := checkUnique(ctx, tx, l); err != nil {
			return err
		}
		if err := tx.UpdateLabel(ctx, l); err != nil {
			return err
		}
		result = l
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update label %d: %w", req.ID, err)
	}
	return result, nil
}

// DeleteLabel refuses to delete a label still referenced by annotations
func (s *service) DeleteLabel(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidLabelID
	}

	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		l, err := tx.GetLabelByID(ctx, id)
		if err != nil {
			return err
		}
		payloads, err := tx.ListLabelPayloads(ctx, l.ProjectID)
		if err != nil {
			return err
		}
		if u := usage(l, payloads); !u.CanBeDeleted {
			return &models.LabelInUseError{Value: l.Value, Count: u.UsageCount}
		}
		return tx.DeleteLabel(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete label %d: %w", id, err)
	}
	return nil
}

// SetActive activates or deactivates a label. Inactive labels are left out
// of the tag configuration but stay valid on existing annotations.
func (s *service) SetActive(ctx context.Context, id int, active bool) (*models.Label, error) {
	if id <= 0 {
		return nil, ErrInvalidLabelID
	}

	var result *models.Label
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		l, err := tx.GetLabelByID(ctx, id)
		if err != nil {
			return err
		}
		l.IsActive = active
		if err := tx.UpdateLabel(ctx, l); err != nil {
			return err
		}
		result = l
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update label %d: %w", id, err)
	}
	return result, nil
}

// ImportConfig creates the labels named in a Label Studio tag configuration
func (s *service) ImportConfig(ctx context.Context, projectID *int, r io.Reader) (*SeedResult, error) {
	parsed, err := export.ParseLabelConfig(r)
	if err != nil {
		return nil, err
	}

	entries := make([]SeedEntry, 0, len(parsed))
	for _, c := range parsed {
		entries = append(entries, SeedEntry{Value: c.Value, Background: c.Background, Hotkey: c.Hotkey})
	}
	return s.Seed(ctx, SeedRequest{ProjectID: projectID, Entries: entries, KeepHotkeys: true})
}

// ============================================================================
// Helpers
// ============================================================================

func validateValue(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ErrEmptyValue
	}
	if utf8.RuneCountInString(v) > models.MaxLabelValueLength {
		return "", ErrValueTooLong
	}
	return v, nil
}

// checkUnique reports value or hotkey clashes with another label of the same scope
func checkUnique(ctx context.Context, tx database.DataStore, l *models.Label) error {
	existing, err := tx.GetLabelByValue(ctx, l.ProjectID, l.Value)
	switch {
	case err == nil && existing.ID != l.ID:
		return fmt.Errorf("%q: %w", l.Value, ErrDuplicateValue)
	case err != nil && !errors.Is(err, models.ErrNotFound):
		return err
	}

	if l.Hotkey == nil {
		return nil
	}
	existing, err = tx.GetLabelByHotkey(ctx, l.ProjectID, *l.Hotkey)
	switch {
	case err == nil && existing.ID != l.ID:
		return fmt.Errorf("%q is bound to %q: %w", *l.Hotkey, existing.Value, ErrDuplicateHotkey)
	case err != nil && !errors.Is(err, models.ErrNotFound):
		return err
	}
	return nil
}

func logSeed(projectID *int, res *SeedResult) {
	scope := "global"
	if projectID != nil {
		scope = fmt.Sprintf("project %d", *projectID)
	}
	slog.Info("seeded labels", "scope", scope,
		"created", len(res.Created), "existing", res.Existing, "cleared", res.Cleared)
}
