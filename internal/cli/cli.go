package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/kdpii/nerlabel/internal/app"
	"github.com/kdpii/nerlabel/internal/config"
	"github.com/kdpii/nerlabel/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services
	db  *sql.DB  // nil when the App was injected
	ctx context.Context
}

// NewCLI loads the configuration and opens the configured database
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := cfg.Database.Path
	if path == "" {
		if path, err = database.DefaultPath(); err != nil {
			return nil, err
		}
	}

	db, err := database.InitDB(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application := app.New(database.NewRepository(db), app.WithConfig(cfg))

	return &CLI{
		App: application,
		db:  db,
		ctx: ctx,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if err := c.App.Close(); err != nil {
		log.Printf("Error closing app: %v", err)
	}
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
