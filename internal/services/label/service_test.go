package label

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/kdpii/nerlabel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fixture struct {
	svc     Service
	repo    *database.Repository
	project *models.Project
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	p := testutil.CreateTestProject(t, db, "labels")
	repo := database.NewRepository(db)
	return fixture{svc: NewService(repo), repo: repo, project: p}
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// CREATE / UPDATE
// ============================================================================

func TestCreateLabel_Defaults(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	l, err := f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "  PERSON  "})
	require.NoError(t, err)
	assert.Equal(t, "PERSON", l.Value)
	assert.Equal(t, models.DefaultLabelColor, l.Background)
	assert.Nil(t, l.Hotkey)
	assert.True(t, l.IsActive)
	assert.Equal(t, 1, l.SortOrder)

	next, err := f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "LOC", Background: "ff0000", Hotkey: "l"})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", next.Background)
	assert.Equal(t, "l", next.HotkeyValue())
	assert.Equal(t, 2, next.SortOrder)
}

func TestCreateLabel_Validation(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateLabelRequest
		want error
	}{
		{"empty value", CreateLabelRequest{Value: "   "}, ErrEmptyValue},
		{"long value", CreateLabelRequest{Value: strings.Repeat("x", 51)}, ErrValueTooLong},
		{"bad color", CreateLabelRequest{Value: "A", Background: "#12345"}, models.ErrInvalidColor},
		{"bad hotkey", CreateLabelRequest{Value: "A", Hotkey: "ab"}, models.ErrInvalidHotkey},
		{"bad symbol", CreateLabelRequest{Value: "A", Hotkey: "~"}, models.ErrInvalidHotkey},
		{"bad project", CreateLabelRequest{Value: "A", ProjectID: ptr(0)}, ErrInvalidProjectID},
	}
	for _, tt := range tests {
		_, err := f.svc.CreateLabel(ctx, tt.req)
		assert.ErrorIs(t, err, tt.want, tt.name)
	}

	_, err := f.svc.CreateLabel(ctx, CreateLabelRequest{Value: "A", ProjectID: ptr(9999)})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateLabel_UniquePerScope(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "PERSON", Hotkey: "p"})
	require.NoError(t, err)

	_, err = f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "PERSON"})
	assert.ErrorIs(t, err, ErrDuplicateValue)

	_, err = f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "PLACE", Hotkey: "p"})
	assert.ErrorIs(t, err, ErrDuplicateHotkey)

	// the global scope is separate
	g, err := f.svc.CreateLabel(ctx, CreateLabelRequest{Value: "PERSON", Hotkey: "p"})
	require.NoError(t, err)
	assert.True(t, g.IsGlobal())
}

func TestUpdateLabel(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	l, err := f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "PER", Hotkey: "p"})
	require.NoError(t, err)
	_, err = f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "LOC", Hotkey: "l"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateLabel(ctx, UpdateLabelRequest{
		ID: l.ID, Value: ptr("PERSON"), Background: ptr("#00ff00"), Hotkey: ptr(""), Description: ptr("people"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PERSON", updated.Value)
	assert.Equal(t, "#00FF00", updated.Background)
	assert.Nil(t, updated.Hotkey)
	assert.Equal(t, "people", updated.Description)

	_, err = f.svc.UpdateLabel(ctx, UpdateLabelRequest{ID: l.ID, Hotkey: ptr("l")})
	assert.ErrorIs(t, err, ErrDuplicateHotkey)

	_, err = f.svc.UpdateLabel(ctx, UpdateLabelRequest{ID: l.ID, Value: ptr("LOC")})
	assert.ErrorIs(t, err, ErrDuplicateValue)

	// keeping its own value is not a clash
	_, err = f.svc.UpdateLabel(ctx, UpdateLabelRequest{ID: l.ID, Value: ptr("PERSON")})
	assert.NoError(t, err)
}

func TestSetActive(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	l, err := f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "PERSON"})
	require.NoError(t, err)

	_, err = f.svc.SetActive(ctx, l.ID, false)
	require.NoError(t, err)

	active, err := f.svc.ListLabels(ctx, ListLabelsRequest{ProjectID: &f.project.ID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.svc.ListLabels(ctx, ListLabelsRequest{ProjectID: &f.project.ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}

// ============================================================================
// USAGE / DELETE
// ============================================================================

func TestDeleteLabel_InUse(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	p := testutil.CreateTestProject(t, db, "usage")
	task := testutil.CreateTestTask(t, db, p.ID, "John lives in Boston")
	person := testutil.CreateTestLabel(t, db, &p.ID, "PERSON", "")
	place := testutil.CreateTestLabel(t, db, &p.ID, "PLACE", "")
	testutil.CreateTestAnnotation(t, db, task, 0, 4, "PERSON")
	testutil.CreateTestAnnotation(t, db, task, 14, 20, "PERSON", "CITY")
	svc := NewService(database.NewRepository(db))
	ctx := context.Background()

	u, err := svc.GetUsage(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, u.UsageCount)
	assert.False(t, u.CanBeDeleted)

	err = svc.DeleteLabel(ctx, person.ID)
	require.ErrorIs(t, err, models.ErrLabelInUse)
	var inUse *models.LabelInUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, 2, inUse.Count)

	require.NoError(t, svc.DeleteLabel(ctx, place.ID))
	_, err = svc.GetLabel(ctx, place.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListUsage_GlobalSpansProjects(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	p1 := testutil.CreateTestProject(t, db, "one")
	p2 := testutil.CreateTestProject(t, db, "two")
	t1 := testutil.CreateTestTask(t, db, p1.ID, "May 1")
	t2 := testutil.CreateTestTask(t, db, p2.ID, "June 2")
	testutil.CreateTestLabel(t, db, nil, "DATE", "d")
	testutil.CreateTestLabel(t, db, &p1.ID, "MONTH", "")
	testutil.CreateTestAnnotation(t, db, t1, 0, 3, "DATE", "MONTH")
	testutil.CreateTestAnnotation(t, db, t2, 0, 4, "DATE")
	svc := NewService(database.NewRepository(db))

	usage, err := svc.ListUsage(context.Background(), ListLabelsRequest{ProjectID: &p1.ID, IncludeGlobal: true})
	require.NoError(t, err)
	counts := map[string]int{}
	for _, u := range usage {
		counts[u.Label.Value] = u.UsageCount
	}
	assert.Equal(t, map[string]int{"DATE": 2, "MONTH": 1}, counts)
}

// ============================================================================
// SEED / IMPORT
// ============================================================================

func TestSeed_GetOrCreate(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	entries := []SeedEntry{{Value: "PERSON"}, {Value: "LOCATION", Background: "ff8800"}}
	res, err := f.svc.Seed(ctx, SeedRequest{ProjectID: &f.project.ID, Entries: entries})
	require.NoError(t, err)
	require.Len(t, res.Created, 2)
	assert.Equal(t, models.SeedLabelColor, res.Created[0].Background)
	assert.Equal(t, "#FF8800", res.Created[1].Background)
	assert.Equal(t, "1", res.Created[0].HotkeyValue())
	assert.Equal(t, "2", res.Created[1].HotkeyValue())
	assert.Equal(t, "label for PERSON", res.Created[0].Description)
	assert.Equal(t, 2, res.Created[1].SortOrder)

	again, err := f.svc.Seed(ctx, SeedRequest{ProjectID: &f.project.ID, Entries: entries})
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Equal(t, 2, again.Existing)

	cleared, err := f.svc.Seed(ctx, SeedRequest{ProjectID: &f.project.ID, Entries: entries[:1], Clear: true})
	require.NoError(t, err)
	assert.Equal(t, 2, cleared.Cleared)
	assert.Len(t, cleared.Created, 1)
}

func TestSeed_HotkeyTakenIsDropped(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateLabel(ctx, CreateLabelRequest{ProjectID: &f.project.ID, Value: "MISC", Hotkey: "1"})
	require.NoError(t, err)

	res, err := f.svc.Seed(ctx, SeedRequest{ProjectID: &f.project.ID, Entries: []SeedEntry{{Value: "PERSON"}}})
	require.NoError(t, err)
	require.Len(t, res.Created, 1)
	assert.Nil(t, res.Created[0].Hotkey)
}

func TestSeed_RollsBackOnInvalidEntry(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Seed(ctx, SeedRequest{ProjectID: &f.project.ID, Entries: []SeedEntry{{Value: "OK"}, {Value: ""}}})
	assert.ErrorIs(t, err, ErrEmptyValue)

	labels, err := f.svc.ListLabels(ctx, ListLabelsRequest{ProjectID: &f.project.ID})
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestParseSeedFile(t *testing.T) {
	t.Parallel()

	yamlDoc := "labels:\n  - PERSON\n  - value: LOCATION\n    background: \"#00FF00\"\n"
	entries, err := ParseSeedFile("tags.yaml", []byte(yamlDoc))
	require.NoError(t, err)
	assert.Equal(t, []SeedEntry{{Value: "PERSON"}, {Value: "LOCATION", Background: "#00FF00"}}, entries)

	entries, err = ParseSeedFile("tags.json", []byte(`["A", {"value": "B", "category": "misc"}]`))
	require.NoError(t, err)
	assert.Equal(t, []SeedEntry{{Value: "A"}, {Value: "B", Category: "misc"}}, entries)

	_, err = ParseSeedFile("tags.json", []byte(`{"value": "A"}`))
	assert.ErrorIs(t, err, ErrInvalidSeedFile)

	_, err = ParseSeedFile("tags.json", []byte(`[1`))
	assert.ErrorIs(t, err, ErrInvalidSeedFile)
}

func TestImportConfig(t *testing.T) {
	t.Parallel()
	f := setup(t)

	config := `<View>
  <Labels name="label" toName="text">
    <Label value="PERSON" background="#FF0000" hotkey="p"/>
    <Label value="ORG" background="#00FF00"/>
  </Labels>
  <Text name="text" value="$text"/>
</View>`
	res, err := f.svc.ImportConfig(context.Background(), &f.project.ID, strings.NewReader(config))
	require.NoError(t, err)
	require.Len(t, res.Created, 2)
	assert.Equal(t, "p", res.Created[0].HotkeyValue())
	assert.Nil(t, res.Created[1].Hotkey)
	assert.Equal(t, "#FF0000", res.Created[0].Background)
}

func TestEnsureLabels(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	p := testutil.CreateTestProject(t, db, "vocab")
	testutil.CreateTestLabel(t, db, nil, "DATE", "")
	testutil.CreateTestLabel(t, db, &p.ID, "PERSON", "")
	repo := database.NewRepository(db)

	var created []*models.Label
	err := repo.WithTx(context.Background(), func(tx database.DataStore) error {
		var err error
		created, err = EnsureLabels(context.Background(), tx, p.ID, []string{"DATE", "PERSON", "ORG", "ORG", " "})
		return err
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "ORG", created[0].Value)
	assert.Equal(t, models.LabelPalette[0], created[0].Background)
}
