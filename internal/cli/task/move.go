package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	taskservice "github.com/thenoetrevino/trtodo/internal/services/task"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task_id> <category>",
		Short: "Move a task to another category",
		Long: `Move a task to another category. Category names match ignoring case.

Moving a soft-deleted task into a category restores it.

Examples:
  trtodo task move 42 Personal
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID, err := cli.ParseID("task", args[0])
	if err != nil {
		return formatter.Usage(err, "")
	}
	categoryName := args[1]

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	err = cliInstance.App.TaskService.MoveTask(ctx, taskID, categoryName)
	if errors.Is(err, taskservice.ErrAlreadyInCategory) {
		// Not a failure: the task is where the caller wants it
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Task %d is already in '%s'\n", taskID, categoryName)
		err = nil
	}
	if err != nil {
		suggestion := ""
		if errors.Is(err, taskservice.ErrCategoryNotFound) {
			suggestion = "Use 'trtodo category list' to see available categories"
		}
		return formatter.Fail(err, suggestion)
	}

	return report(formatter, taskID, map[string]interface{}{"task_id": taskID, "category": categoryName},
		"Task %d moved to '%s'\n", taskID, categoryName)
}
