package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
)

// PurgeCmd returns the task purge subcommand
func PurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Permanently remove old soft-deleted tasks",
		Long: `Permanently remove soft-deleted tasks that were last updated at least
--days days ago. Without --days the deleted-task-lifespan setting is
used, and 0 (everything) when none is set.

Examples:
  trtodo task purge
  trtodo task purge --days=0
`,
		Args: cobra.NoArgs,
		RunE: runPurge,
	}

	cmd.Flags().Int("days", 0, "Minimum age in days")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	var days *int
	if cmd.Flags().Changed("days") {
		d, _ := cmd.Flags().GetInt("days")
		days = &d
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer closeCLI(cliInstance)

	purged, err := cliInstance.App.TaskService.PurgeDeleted(ctx, days)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return report(formatter, purged, map[string]interface{}{"purged": purged},
		"Purged %d deleted tasks\n", purged)
}
