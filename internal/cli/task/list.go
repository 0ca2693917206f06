package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/cli/styles"
	taskservice "github.com/thenoetrevino/trtodo/internal/services/task"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, optionally filtered.

Deleted tasks are hidden unless --deleted is given.

Examples:
  trtodo task list
  trtodo task list --category=Work --open
  trtodo task list --priority=high --json
  trtodo task list --search=report
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("category", "", "Only tasks in this category")
	cmd.Flags().String("priority", "", "Only tasks with this priority")
	cmd.Flags().Bool("done", false, "Only completed tasks")
	cmd.Flags().Bool("open", false, "Only tasks that are not completed")
	cmd.Flags().String("search", "", "Case-insensitive title substring")
	cmd.Flags().Bool("deleted", false, "Include soft-deleted tasks")
	cmd.MarkFlagsMutuallyExclusive("done", "open")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	req := taskservice.ListTasksRequest{}
	req.CategoryName, _ = cmd.Flags().GetString("category")
	req.Priority, _ = cmd.Flags().GetString("priority")
	req.Query, _ = cmd.Flags().GetString("search")
	req.IncludeDeleted, _ = cmd.Flags().GetBool("deleted")
	if done, _ := cmd.Flags().GetBool("done"); done {
		req.Completed = &done
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		completed := false
		req.Completed = &completed
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, req)
	if err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		for _, t := range tasks {
			formatter.ID(t.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Result(map[string]interface{}{"tasks": tasks})
	}

	// Human-readable output
	if len(tasks) == 0 {
		formatter.Println("No tasks found")
		return nil
	}

	formatter.Printf("Found %d tasks:\n\n", len(tasks))
	for _, t := range tasks {
		formatter.Println("  " + styles.RenderTaskLine(t))
	}

	return nil
}
