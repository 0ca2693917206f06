package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/cli/styles"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task_id>",
		Short: "Show a task",
		Long: `Show a task.

With --markdown the description is rendered as markdown (headings, lists,
code blocks) below the task card.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
	cmd.Flags().Bool("markdown", false, "Render the description as markdown")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	task, err := cliInstance.App.TaskService.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err, "Use 'trtodo task list' to see available tasks")
	}

	if formatter.Quiet {
		formatter.ID(task.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(map[string]interface{}{"task": task})
	}

	categoryName := ""
	if !task.IsUncategorized() {
		categories, err := cliInstance.App.CategoryService.ListCategories(ctx)
		if err != nil {
			return formatter.Fail(err, "")
		}
		for _, c := range categories {
			if c.ID == task.CategoryID {
				categoryName = c.Name
				break
			}
		}
	}

	markdown, _ := cmd.Flags().GetBool("markdown")
	card := *task
	if markdown {
		card.Description = ""
	}
	formatter.Println(styles.RenderTaskCard(card, categoryName))
	if markdown && task.Description != "" {
		formatter.Println()
		formatter.Println(styles.RenderMarkdown(task.Description, styles.DescriptionWidth))
	}
	return nil
}
