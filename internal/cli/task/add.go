package task

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	taskservice "github.com/thenoetrevino/trtodo/internal/services/task"
)

// AddCmd returns the task add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Long: `Add a new task.

Without --category the task goes to the current category (see 'trtodo
category use'), then to the configured default category.

Examples:
  trtodo task add "Write report"
  trtodo task add "Buy milk" --category=Personal --priority=low --due=2025-03-20
  echo "details" | trtodo task add "Call plumber" --description=-

  # Quiet mode for bash capture
  TASK_ID=$(trtodo task add "Fix bug" --quiet)
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("category", "", "Category name")
	cmd.Flags().String("priority", "", "Priority: high, medium, low")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	priority, _ := cmd.Flags().GetString("priority")
	due, _ := cmd.Flags().GetString("due")

	dueDate, err := cli.ParseDueDate(due)
	if err != nil {
		return formatter.Usage(err, "")
	}
	description, err = cli.ReadDescription(description, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	task, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:        strings.Join(args, " "),
		Description:  description,
		CategoryName: category,
		Priority:     priority,
		DueDate:      dueDate,
	})
	if err != nil {
		suggestion := ""
		if category != "" {
			suggestion = "Use 'trtodo category list' to see available categories"
		}
		return formatter.Fail(err, suggestion)
	}

	if formatter.Quiet {
		formatter.ID(task.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(map[string]interface{}{"task": task})
	}

	formatter.Printf("✓ Task '%s' created (ID: %d)\n", task.Title, task.ID)
	return nil
}
