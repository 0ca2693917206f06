package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/app"
	"github.com/thenoetrevino/trtodo/internal/cli"
	"github.com/thenoetrevino/trtodo/internal/logging"
	"github.com/thenoetrevino/trtodo/internal/storage"
	"github.com/thenoetrevino/trtodo/internal/testutil"
)

// SetupCLITest returns an App over an in-memory store seeded with
// testutil.SampleSnapshot, plus the store for assertions.
func SetupCLITest(t *testing.T) (*testutil.MemStorage, *app.App) {
	t.Helper()

	store := testutil.NewMemStorage(testutil.SampleSnapshot())
	return store, SetupCLITestWithStorage(t, store)
}

// SetupCLITestWithStorage builds an App over an existing backend
func SetupCLITestWithStorage(t *testing.T, store storage.Storage) *app.App {
	t.Helper()

	testApp, err := app.New(context.Background(), nil, app.WithStorage(store), app.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	return testApp
}

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is passed through the context so commands never open real storage.
// Stdout and stderr are captured separately.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	out, _, err := ExecuteCLICommandWithStderr(t, testApp, cmd, args)
	return out, err
}

// ExecuteCLICommandWithStderr is ExecuteCLICommand that also returns stderr
func ExecuteCLICommandWithStderr(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(&bytes.Buffer{})

	// Disable usage output on error for cleaner test output
	SetupCobraCommand(cmd, args)

	err := cmd.ExecuteContext(cli.WithApp(context.Background(), testApp))
	return stdout.String(), stderr.String(), err
}
