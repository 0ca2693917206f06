package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task_id>",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed.

Examples:
  trtodo task done 42
  trtodo task done 42 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetCompleted(cmd, args, true)
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// ReopenCmd returns the task reopen subcommand
func ReopenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reopen <task_id>",
		Short: "Mark a completed task as open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetCompleted(cmd, args, false)
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSetCompleted(cmd *cobra.Command, args []string, completed bool) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID, err := cli.ParseID("task", args[0])
	if err != nil {
		return formatter.Usage(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	update := cliInstance.App.TaskService.CompleteTask
	verb := "completed"
	if !completed {
		update = cliInstance.App.TaskService.ReopenTask
		verb = "reopened"
	}
	if err := update(ctx, taskID); err != nil {
		return formatter.Fail(err, "Use 'trtodo task list' to see available tasks")
	}

	return report(formatter, taskID, map[string]interface{}{"task_id": taskID, "completed": completed},
		"Task %d %s\n", taskID, verb)
}

// report prints the outcome of a single-task command in the requested mode
func report(f *cli.OutputFormatter, id int, fields map[string]interface{}, format string, a ...interface{}) error {
	if f.Quiet {
		f.ID(id)
		return nil
	}
	if f.JSON {
		return f.Result(fields)
	}
	f.Printf(format, a...)
	return nil
}
