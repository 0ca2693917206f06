package configcmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	settingsservice "github.com/thenoetrevino/trtodo/internal/services/settings"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

// Settings live with the data, so these keys open the configured backend
// instead of the config file.

func withCLI(cmd *cobra.Command, f *cli.OutputFormatter, fn func(*cli.CLI) error) error {
	c, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return f.Fail(err, "")
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}()
	return fn(c)
}

func getSetting(cmd *cobra.Command, f *cli.OutputFormatter, key string) error {
	return withCLI(cmd, f, func(c *cli.CLI) error {
		e, err := c.App.SettingsService.Get(cmd.Context(), key)
		if err != nil {
			return f.Fail(err, "")
		}
		if f.JSON {
			return f.Result(map[string]interface{}{"key": e.Key, "value": e.Value, "default": e.Default})
		}
		f.Println(e.Value)
		return nil
	})
}

func listSettings(cmd *cobra.Command, f *cli.OutputFormatter) ([]settingsservice.Entry, error) {
	var entries []settingsservice.Entry
	err := withCLI(cmd, f, func(c *cli.CLI) error {
		var err error
		entries, err = c.App.SettingsService.List(cmd.Context())
		if err != nil {
			return f.Fail(err, "")
		}
		return nil
	})
	return entries, err
}

func changeSetting(cmd *cobra.Command, f *cli.OutputFormatter, key string, change func(settingsservice.Service) error) error {
	return withCLI(cmd, f, func(c *cli.CLI) error {
		if err := change(c.App.SettingsService); err != nil {
			hint := ""
			if errors.Is(err, settingsservice.ErrCategoryNotFound) {
				hint = "Use 'trtodo category list' to see available categories"
			}
			return f.Fail(err, hint)
		}
		e, err := c.App.SettingsService.Get(cmd.Context(), key)
		if err != nil {
			return f.Fail(err, "")
		}
		if f.JSON {
			return f.Result(map[string]interface{}{"key": e.Key, "value": e.Value, "default": e.Default})
		}
		f.Printf("%s = %s\n", e.Key, e.Value)
		return nil
	})
}

// ResetCmd returns the config reset subcommand
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all tasks, categories and settings",
		Long: `Erase every task, category and stored setting, then recreate the
default categories (Home and Work). The config file is left alone.

This cannot be undone, so --yes is required.

Examples:
  trtodo config reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cli.NewFormatter(cmd)
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return f.Usage(errors.New("reset erases all data; pass --yes to confirm"), "")
			}

			ctx := cmd.Context()
			return withCLI(cmd, f, func(c *cli.CLI) error {
				if err := storage.Reset(ctx, c.App.Storage); err != nil {
					return f.Fail(err, "")
				}
				if _, err := c.App.CategoryService.SeedDefaults(ctx); err != nil {
					return f.Fail(err, "")
				}
				slog.Info("storage reset")

				if f.JSON {
					return f.Result(map[string]interface{}{"reset": true})
				}
				f.Println("All data erased, default categories restored")
				return nil
			})
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm erasing all data")
	cli.AddOutputFlags(cmd)
	return cmd
}
