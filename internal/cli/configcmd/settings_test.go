package configcmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/cli/task"
	"github.com/thenoetrevino/trtodo/internal/database"
	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
	"github.com/thenoetrevino/trtodo/internal/storage/filestore"
	"github.com/thenoetrevino/trtodo/internal/testutil"
	clitest "github.com/thenoetrevino/trtodo/internal/testutil/cli"
)

func TestSettings_StoredWithData(t *testing.T) {
	ctx := context.Background()
	store, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, GetCmd(), []string{"default-category"})
	require.NoError(t, err)
	assert.Equal(t, "Work\n", output)

	output, err = clitest.ExecuteCLICommand(t, app, SetCmd(), []string{"default-priority", "HIGH"})
	require.NoError(t, err)
	assert.Equal(t, "default-priority = high\n", output)

	output, err = clitest.ExecuteCLICommand(t, app, SetCmd(), []string{"default-category", "personal", "--json"})
	require.NoError(t, err)
	assert.Equal(t, "Personal", clitest.ParseJSON(t, output)["value"])

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, snap.Config.DefaultPriority)
	assert.Equal(t, "Personal", snap.Config.DefaultCategory)

	_, err = clitest.ExecuteCLICommand(t, app, UnsetCmd(), []string{"deleted-task-lifespan"})
	require.NoError(t, err)
	output, err = clitest.ExecuteCLICommand(t, app, GetCmd(), []string{"deleted-task-lifespan", "--json"})
	require.NoError(t, err)
	result := clitest.ParseJSON(t, output)
	assert.Equal(t, "0", result["value"])
	assert.Equal(t, true, result["default"])

	snap, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.Config.DeletedTaskLifespan)
}

func TestSettings_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"lifespan not a number", []string{"deleted-task-lifespan", "soon"}, cli.ExitValidation},
		{"negative lifespan", []string{"deleted-task-lifespan", "-5"}, cli.ExitValidation},
		{"bad priority", []string{"default-priority", "urgent"}, cli.ExitValidation},
		{"unknown category", []string{"default-category", "Nowhere"}, cli.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, app := clitest.SetupCLITest(t)

			// "--" keeps "-5" from being read as a flag
			args := append([]string{"--"}, tt.args...)
			_, stderr, err := clitest.ExecuteCLICommandWithStderr(t, app, SetCmd(), args)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err))
			assert.Contains(t, stderr, "Error:")
			assert.Equal(t, 0, store.Saves)
		})
	}
}

func TestSettings_DriveTaskCommands(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, SetCmd(), []string{"default-priority", "low"})
	require.NoError(t, err)
	output, err := clitest.ExecuteCLICommand(t, app, task.AddCmd(), []string{"Plan trip", "--json"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityLow, clitest.ParseTask(t, output).Priority)

	// task 5 was deleted in March 2025, well inside 10000 days
	_, err = clitest.ExecuteCLICommand(t, app, SetCmd(), []string{"deleted-task-lifespan", "10000"})
	require.NoError(t, err)
	output, err = clitest.ExecuteCLICommand(t, app, task.PurgeCmd(), []string{"--json"})
	require.NoError(t, err)
	assert.Equal(t, float64(0), clitest.ParseJSON(t, output)["purged"])

	_, err = clitest.ExecuteCLICommand(t, app, SetCmd(), []string{"deleted-task-lifespan", "0"})
	require.NoError(t, err)
	output, err = clitest.ExecuteCLICommand(t, app, task.PurgeCmd(), []string{"--json"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), clitest.ParseJSON(t, output)["purged"])
}

func TestList_IncludesSettings(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	isolate(t)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	settings := clitest.ParseJSON(t, output)["settings"].(map[string]interface{})
	assert.Equal(t, "30", settings["deleted-task-lifespan"])
	assert.Equal(t, "Work", settings["default-category"])
	assert.Equal(t, "medium", settings["default-priority"])
}

func backends(t *testing.T) map[string]storage.Storage {
	t.Helper()

	db, err := database.Open(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]storage.Storage{
		"json":   filestore.New(filepath.Join(t.TempDir(), "data.json")),
		"yaml":   filestore.New(filepath.Join(t.TempDir(), "data.yaml")),
		"sqlite": db,
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, testutil.SampleSnapshot()))
			app := clitest.SetupCLITestWithStorage(t, store)

			_, err := clitest.ExecuteCLICommand(t, app, ResetCmd(), nil)
			assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
			snap, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Len(t, snap.Tasks, 4, "reset without --yes must not touch data")

			output, err := clitest.ExecuteCLICommand(t, app, ResetCmd(), []string{"--yes"})
			require.NoError(t, err)
			assert.Contains(t, output, "default categories restored")

			snap, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, snap.Tasks)
			assert.Nil(t, snap.CurrentCategory)
			assert.Equal(t, models.Settings{}, snap.Config)
			require.Len(t, snap.Categories, 2)
			assert.Equal(t, "Home", snap.Categories[0].Name)
			assert.Equal(t, "Work", snap.Categories[1].Name)
			assert.Equal(t, 1, snap.Categories[0].ID)
		})
	}
}
