// Package db holds the "trtodo db" schema commands. They only apply to the
// sqlite backend.
package db

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/database"
)

// ErrNotSQLite is returned when the configured backend has no schema
var ErrNotSQLite = errors.New("schema commands need the sqlite storage backend")

// DBCmd returns the db parent command
func DBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and migrate the sqlite schema",
	}

	cmd.AddCommand(VersionCmd())
	cmd.AddCommand(MigrateCmd())
	cmd.AddCommand(RollbackCmd())

	return cmd
}

// openStore returns the sqlite store behind the CLI, or a usage error
func openStore(cmd *cobra.Command, f *cli.OutputFormatter) (*cli.CLI, *database.Store, error) {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, nil, f.Fail(err, "")
	}
	store, ok := cliInstance.App.Storage.(*database.Store)
	if !ok {
		closeCLI(cliInstance)
		return nil, nil, f.Usage(ErrNotSQLite, "Run 'trtodo config set storage.type sqlite' first")
	}
	return cliInstance, store, nil
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// VersionCmd returns the db version subcommand
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the applied and latest schema versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cli.NewFormatter(cmd)
			c, store, err := openStore(cmd, f)
			if err != nil {
				return err
			}
			defer closeCLI(c)

			current, err := store.SchemaVersion(cmd.Context())
			if err != nil {
				return f.Fail(err, "")
			}
			latest := store.LatestVersion()

			if f.Quiet {
				f.ID(current)
				return nil
			}
			if f.JSON {
				return f.Result(map[string]interface{}{"version": current, "latest": latest, "path": store.Path()})
			}
			f.Printf("Schema version %d of %d (%s)\n", current, latest, store.Path())
			return nil
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// MigrateCmd returns the db migrate subcommand
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations",
		Long: `Apply every pending migration in one transaction.

Opening the store already migrates it, so this is normally a no-op; it is
useful after a rollback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cli.NewFormatter(cmd)
			c, store, err := openStore(cmd, f)
			if err != nil {
				return err
			}
			defer closeCLI(c)

			applied, err := store.Migrate(cmd.Context())
			if err != nil {
				return f.Fail(err, "")
			}
			return reportVersion(cmd, f, store, "applied", applied)
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// RollbackCmd returns the db rollback subcommand
func RollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback <target_version>",
		Short: "Roll the schema back to a version",
		Long: `Run the down steps of every migration above target_version, newest
first, in one transaction. Rolling back drops the affected tables and the
data in them.

Examples:
  trtodo db rollback 3
  trtodo db rollback 0   # drop everything`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cli.NewFormatter(cmd)
			target, err := strconv.Atoi(args[0])
			if err != nil || target < 0 {
				return f.Usage(errors.New("invalid target version: "+args[0]), "")
			}

			c, store, err := openStore(cmd, f)
			if err != nil {
				return err
			}
			defer closeCLI(c)

			reverted, err := store.Rollback(cmd.Context(), target)
			if err != nil {
				return f.Fail(err, "")
			}
			return reportVersion(cmd, f, store, "reverted", reverted)
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func reportVersion(cmd *cobra.Command, f *cli.OutputFormatter, store *database.Store, verb string, n int) error {
	current, err := store.SchemaVersion(cmd.Context())
	if err != nil {
		return f.Fail(err, "")
	}
	if f.Quiet {
		f.ID(current)
		return nil
	}
	if f.JSON {
		return f.Result(map[string]interface{}{verb: n, "version": current})
	}
	f.Printf("%d migrations %s, schema now at version %d\n", n, verb, current)
	return nil
}
