package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/trtodo/internal/app"
	"github.com/thenoetrevino/trtodo/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	owned  bool // App was opened here and must be closed here
}

// NewCLI opens the configured storage and builds the application container.
// A store without any data gets the default categories.
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if _, err := application.CategoryService.SeedDefaults(ctx); err != nil {
		_ = application.Close()
		return nil, fmt.Errorf("failed to create default categories: %w", err)
	}

	return &CLI{App: application, Config: cfg, owned: true}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
