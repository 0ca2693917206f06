// Package category holds the "trtodo category" commands
package category

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/models"
)

// CategoryCmd returns the category parent command
func CategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(UseCmd())

	return cmd
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

const listSuggestion = "Use 'trtodo category list' to see available categories"

// lookup resolves a category name, ignoring case
func lookup(ctx context.Context, c *cli.CLI, name string) (*models.Category, error) {
	return c.App.CategoryService.GetCategoryByName(ctx, name)
}
