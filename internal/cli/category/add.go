package category

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	categoryservice "github.com/thenoetrevino/trtodo/internal/services/category"
)

// AddCmd returns the category add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Add a new category. Names are unique ignoring case.

Examples:
  trtodo category add Work
  trtodo category add Errands --description="weekend things" --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().String("description", "", "Category description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	description, _ := cmd.Flags().GetString("description")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	category, err := cliInstance.App.CategoryService.CreateCategory(ctx, categoryservice.CreateCategoryRequest{
		Name:        args[0],
		Description: description,
	})
	if err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		formatter.ID(category.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(map[string]interface{}{"category": category})
	}

	formatter.Printf("✓ Category '%s' created (ID: %d)\n", category.Name, category.ID)
	return nil
}
