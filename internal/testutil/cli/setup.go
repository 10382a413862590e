package cli

import (
	"database/sql"
	"testing"

	"github.com/kdpii/nerlabel/internal/app"
	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, app.New(database.NewRepository(db))
}
