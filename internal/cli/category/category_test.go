package category

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/models"
	clitest "github.com/thenoetrevino/trtodo/internal/testutil/cli"
)

func TestAdd(t *testing.T) {
	store, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, AddCmd(), []string{"Errands", "--description", "weekend"})
	require.NoError(t, err)
	assert.Contains(t, output, "Category 'Errands' created (ID: 3)")

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.FindCategory(3))
	assert.Equal(t, "weekend", snap.FindCategory(3).Description)

	_, err = clitest.ExecuteCLICommand(t, app, AddCmd(), []string{"errands"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestList(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("human readable", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Found 2 categories")
		assert.Contains(t, output, "Work")
		assert.Contains(t, output, "(2 tasks)")
		assert.Contains(t, output, "(1 tasks)")
	})

	t.Run("json marks current", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)
		result := clitest.ParseJSON(t, output)
		assert.Len(t, result["categories"], 2)
		assert.Equal(t, float64(1), result["current_category"])
	})

	t.Run("quiet", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, strings.Fields(output))
	})
}

func TestRename(t *testing.T) {
	store, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, RenameCmd(), []string{"personal", "Home"})
	require.NoError(t, err)
	assert.Contains(t, output, "renamed to 'Home'")

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Home", snap.FindCategory(2).Name)

	_, err = clitest.ExecuteCLICommand(t, app, RenameCmd(), []string{"Work", "home"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, app, RenameCmd(), []string{"Missing", "x"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes tasks by default", func(t *testing.T) {
		store, app := clitest.SetupCLITest(t)

		output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"Work"})
		require.NoError(t, err)
		assert.Contains(t, output, "2 tasks soft-deleted")

		snap, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, snap.FindCategory(1))
		assert.Nil(t, snap.CurrentCategory)
		assert.Equal(t, models.UncategorizedID, snap.FindTask(1).CategoryID)
	})

	t.Run("reassign", func(t *testing.T) {
		store, app := clitest.SetupCLITest(t)

		output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"Work", "--reassign", "Personal", "--json"})
		require.NoError(t, err)
		result := clitest.ParseJSON(t, output)
		assert.Equal(t, float64(2), result["tasks_moved"])

		snap, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, snap.FindTask(2).CategoryID)
	})

	t.Run("errors", func(t *testing.T) {
		store, app := clitest.SetupCLITest(t)

		_, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"Nope"})
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

		_, err = clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"Work", "--reassign", "work"})
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

		assert.Equal(t, 0, store.Saves)
	})
}

func TestUse(t *testing.T) {
	store, app := clitest.SetupCLITest(t)
	ctx := context.Background()

	output, err := clitest.ExecuteCLICommand(t, app, UseCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Current category: Work")

	_, err = clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"PERSONAL"})
	require.NoError(t, err)
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentCategory)
	assert.Equal(t, 2, *snap.CurrentCategory)

	output, err = clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"--clear"})
	require.NoError(t, err)
	assert.Contains(t, output, "cleared")
	snap, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.CurrentCategory)

	_, err = clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"Work", "--clear"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
