package cli

import (
	"context"

	"github.com/kdpii/nerlabel/internal/app"
	"github.com/kdpii/nerlabel/internal/testutil"
)

// GetCLIFromContext returns a CLI around the App injected into ctx by
// tests, or opens the configured database
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(testutil.TestAppKey).(*app.App); ok && a != nil {
		return &CLI{App: a, ctx: ctx}, nil
	}
	return NewCLI(ctx)
}
