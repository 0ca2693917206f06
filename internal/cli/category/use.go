package category

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
)

// UseCmd returns the category use subcommand
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use [name]",
		Short: "Set the current category",
		Long: `Set the category new tasks go to when no --category is given.

The choice is stored with the data, so it applies to every later command.

Examples:
  trtodo category use Work      # Use Work
  trtodo category use           # Show the current category
  trtodo category use --clear   # Clear it`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUse,
	}

	cmd.Flags().Bool("clear", false, "Clear the current category")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	clearCurrent, _ := cmd.Flags().GetBool("clear")

	if clearCurrent && len(args) > 0 {
		return formatter.Usage(errors.New("cannot combine a category name with --clear"), "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	svc := cliInstance.App.CategoryService

	switch {
	case clearCurrent:
		if err := svc.ClearCurrentCategory(ctx); err != nil {
			return formatter.Fail(err, "")
		}
		if formatter.JSON {
			return formatter.Result(map[string]interface{}{"current_category": nil})
		}
		formatter.Println("Current category cleared")
		return nil

	case len(args) == 0:
		current, err := svc.CurrentCategory(ctx)
		if err != nil {
			return formatter.Fail(err, "")
		}
		if formatter.JSON {
			return formatter.Result(map[string]interface{}{"current_category": current})
		}
		if current == nil {
			formatter.Println("No current category")
			return nil
		}
		if formatter.Quiet {
			formatter.ID(current.ID)
			return nil
		}
		formatter.Printf("Current category: %s (ID: %d)\n", current.Name, current.ID)
		return nil
	}

	category, err := lookup(ctx, cliInstance, args[0])
	if err != nil {
		return formatter.Fail(err, listSuggestion)
	}
	if err := svc.UseCategory(ctx, category.ID); err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		formatter.ID(category.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(map[string]interface{}{"current_category": category})
	}
	formatter.Printf("Now using category '%s'\n", category.Name)
	return nil
}
