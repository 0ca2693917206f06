// Package configcmd holds the "trtodo config" commands
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/config"
	settingsservice "github.com/thenoetrevino/trtodo/internal/services/settings"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change configuration",
		Long: `Read and change the configuration file and the settings stored with
the data.

File keys: storage.type (json or sqlite), storage.path, log.level, log.file,
theme (default, dragon, lotus, monochrome, wave).
Environment variables (TRTODO_STORAGE_TYPE, ...) override the file when
commands run, but are never written back to it.

Stored keys: deleted-task-lifespan (days, 0 or more), default-category,
default-priority (low, medium, high). These are saved in the task storage.`,
	}

	cmd.AddCommand(GetCmd())
	cmd.AddCommand(SetCmd())
	cmd.AddCommand(UnsetCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(PathCmd())
	cmd.AddCommand(ResetCmd())

	return cmd
}

// effective returns the config the other commands run with
func effective(cmd *cobra.Command) (*config.Config, error) {
	if cfg := cli.ConfigFromContext(cmd.Context()); cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// GetCmd returns the config get subcommand
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cli.NewFormatter(cmd)
			if settingsservice.IsKey(args[0]) {
				return getSetting(cmd, f, args[0])
			}
			cfg, err := effective(cmd)
			if err != nil {
				return f.Fail(err, "")
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return f.Fail(err, "Use 'trtodo config list' to see available keys")
			}
			if f.JSON {
				return f.Result(map[string]interface{}{"key": args[0], "value": value})
			}
			f.Println(value)
			return nil
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// ListCmd returns the config list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every configuration value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cli.NewFormatter(cmd)
			cfg, err := effective(cmd)
			if err != nil {
				return f.Fail(err, "")
			}

			entries, err := listSettings(cmd, f)
			if err != nil {
				return err
			}

			values := make(map[string]interface{}, len(config.Keys()))
			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				values[key] = value
			}
			settings := make(map[string]interface{}, len(entries))
			for _, e := range entries {
				settings[e.Key] = e.Value
			}
			if f.JSON {
				return f.Result(map[string]interface{}{"config": values, "settings": settings})
			}
			for _, key := range config.Keys() {
				f.Printf("%s = %s\n", key, values[key])
			}
			for _, e := range entries {
				f.Printf("%s = %s\n", e.Key, e.Value)
			}
			return nil
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// SetCmd returns the config set subcommand
func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration value",
		Long: `Change one configuration value and save the file.

Examples:
  trtodo config set storage.type sqlite
  trtodo config set storage.path ~/todo/data.yaml
  trtodo config set log.level debug
  trtodo config set default-priority high
  trtodo config set deleted-task-lifespan 30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if settingsservice.IsKey(args[0]) {
				return changeSetting(cmd, cli.NewFormatter(cmd), args[0], func(svc settingsservice.Service) error {
					return svc.Set(cmd.Context(), args[0], args[1])
				})
			}
			return update(cmd, args[0], func(cfg *config.Config) error {
				return cfg.Set(args[0], args[1])
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// UnsetCmd returns the config unset subcommand
func UnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Reset one configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if settingsservice.IsKey(args[0]) {
				return changeSetting(cmd, cli.NewFormatter(cmd), args[0], func(svc settingsservice.Service) error {
					return svc.Unset(cmd.Context(), args[0])
				})
			}
			return update(cmd, args[0], func(cfg *config.Config) error {
				return cfg.Unset(args[0])
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func update(cmd *cobra.Command, key string, change func(*config.Config) error) error {
	f := cli.NewFormatter(cmd)

	path, err := config.Path()
	if err != nil {
		return f.Fail(err, "")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return f.Fail(err, "")
	}
	if err := change(cfg); err != nil {
		return f.Fail(err, "Use 'trtodo config list' to see available keys")
	}
	if err := cfg.Save(path); err != nil {
		return f.Fail(err, "")
	}

	value, _ := cfg.Get(key)
	if f.JSON {
		return f.Result(map[string]interface{}{"key": key, "value": value, "path": path})
	}
	f.Printf("%s = %s\n", key, value)
	return nil
}

// PathCmd returns the config path subcommand
func PathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cli.NewFormatter(cmd)
			path, err := config.Path()
			if err != nil {
				return f.Fail(err, "")
			}
			if f.JSON {
				return f.Result(map[string]interface{}{"path": path})
			}
			f.Println(path)
			return nil
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}
