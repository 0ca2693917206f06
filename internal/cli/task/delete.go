package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task_id>",
		Short: "Delete a task",
		Long: `Delete a task.

By default the task is soft-deleted: it leaves its category and is removed
for good by 'trtodo task purge' once it is older than the configured
lifespan. --hard removes it immediately.

Examples:
  trtodo task delete 42
  trtodo task delete 42 --hard
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("hard", false, "Remove the task permanently")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	hard, _ := cmd.Flags().GetBool("hard")

	taskID, err := cli.ParseID("task", args[0])
	if err != nil {
		return formatter.Usage(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	if err := cliInstance.App.TaskService.DeleteTask(ctx, taskID, hard); err != nil {
		return formatter.Fail(err, "Use 'trtodo task list --deleted' to see available tasks")
	}

	verb := "deleted"
	if hard {
		verb = "permanently deleted"
	}
	return report(formatter, taskID, map[string]interface{}{"task_id": taskID, "hard": hard},
		"Task %d %s\n", taskID, verb)
}
