package category

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/cli/styles"
	taskservice "github.com/thenoetrevino/trtodo/internal/services/task"
)

// ListCmd returns the category list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long: `List categories with their task counts. The current category is
marked with '*'.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	categories, err := cliInstance.App.CategoryService.ListCategories(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	current, err := cliInstance.App.CategoryService.CurrentCategory(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		for _, c := range categories {
			formatter.ID(c.ID)
		}
		return nil
	}

	if formatter.JSON {
		var currentID *int
		if current != nil {
			currentID = &current.ID
		}
		return formatter.Result(map[string]interface{}{
			"categories":       categories,
			"current_category": currentID,
		})
	}

	if len(categories) == 0 {
		formatter.Println("No categories found")
		return nil
	}

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, taskservice.ListTasksRequest{})
	if err != nil {
		return formatter.Fail(err, "")
	}
	counts := make(map[int]int, len(categories))
	for _, t := range tasks {
		counts[t.CategoryID]++
	}

	formatter.Printf("Found %d categories:\n\n", len(categories))
	for _, c := range categories {
		isCurrent := current != nil && current.ID == c.ID
		formatter.Println(styles.RenderCategoryLine(c, counts[c.ID], isCurrent))
	}

	return nil
}
