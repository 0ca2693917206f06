package category

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
)

// DeleteCmd returns the category delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long: `Delete a category.

Its tasks are moved to --reassign, or soft-deleted when no target is given.
If it was the current category, no category is current afterwards.

Examples:
  trtodo category delete Errands
  trtodo category delete Errands --reassign=Personal
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().String("reassign", "", "Move the category's tasks to this category")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	reassign, _ := cmd.Flags().GetString("reassign")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	category, err := lookup(ctx, cliInstance, args[0])
	if err != nil {
		return formatter.Fail(err, listSuggestion)
	}

	var target *int
	if reassign != "" {
		t, err := lookup(ctx, cliInstance, reassign)
		if err != nil {
			return formatter.Fail(err, listSuggestion)
		}
		target = &t.ID
	}

	moved, err := cliInstance.App.CategoryService.DeleteCategory(ctx, category.ID, target)
	if err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		formatter.ID(category.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(map[string]interface{}{
			"category_id": category.ID,
			"tasks_moved": moved,
			"reassigned":  target,
		})
	}

	formatter.Printf("Category '%s' deleted\n", category.Name)
	if moved > 0 {
		if target != nil {
			formatter.Printf("  %d tasks moved to '%s'\n", moved, reassign)
		} else {
			formatter.Printf("  %d tasks soft-deleted\n", moved)
		}
	}
	return nil
}
