package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/cli/category"
	"github.com/thenoetrevino/trtodo/internal/cli/configcmd"
	"github.com/thenoetrevino/trtodo/internal/cli/db"
	"github.com/thenoetrevino/trtodo/internal/cli/styles"
	"github.com/thenoetrevino/trtodo/internal/cli/task"
	"github.com/thenoetrevino/trtodo/internal/config"
	"github.com/thenoetrevino/trtodo/internal/logging"
)

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "trtodo",
		Short: "trtodo - a terminal todo list",
		Long: `trtodo keeps tasks in categories and stores them in a JSON or YAML file,
or in a SQLite database (see 'trtodo config set storage.type').`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				if err := os.Setenv("TRTODO_CONFIG", path); err != nil {
					return err
				}
			}

			cfg, err := config.Load()
			if err != nil {
				// A broken config must still be fixable through "trtodo config"
				if isConfigCmd(cmd) {
					slog.SetDefault(logging.Discard())
					return nil
				}
				formatter := cli.NewFormatter(cmd)
				return formatter.Fail(err, "Use 'trtodo config path' to find the configuration file")
			}

			logCloser, err = logging.Init(cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			styles.Init(styles.FromScheme(cfg.ColorScheme()))
			slog.Debug("command started", "command", cmd.CommandPath(), "storage", cfg.Storage.Type)

			cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/trtodo/config.yaml)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewFormatter(cmd).Usage(err, fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})

	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(category.CategoryCmd())
	rootCmd.AddCommand(db.DBCmd())
	rootCmd.AddCommand(configcmd.ConfigCmd())

	return rootCmd
}

func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func Execute() error {
	return NewRootCmd().Execute()
}
