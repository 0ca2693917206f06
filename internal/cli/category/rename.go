package category

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
)

// RenameCmd returns the category rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <name> <new_name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE:  runRename,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	category, err := lookup(ctx, cliInstance, args[0])
	if err != nil {
		return formatter.Fail(err, listSuggestion)
	}
	if err := cliInstance.App.CategoryService.RenameCategory(ctx, category.ID, args[1]); err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		formatter.ID(category.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(map[string]interface{}{"category_id": category.ID, "name": args[1]})
	}
	formatter.Printf("Category '%s' renamed to '%s'\n", category.Name, args[1])
	return nil
}
