package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/task-reminder/internal/app"
	"github.com/runoshun/task-reminder/internal/domain"
)

// newDataDir returns an empty data directory with an isolated global config home.
func newDataDir(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return t.TempDir()
}

// runCLI executes a fresh root command against dataDir and returns stdout.
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(app.New, "test-version")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

// openContainer opens a container on dataDir for inspecting stored state.
func openContainer(t *testing.T, dataDir string) *app.Container {
	t.Helper()
	c, err := app.New(dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewRootCommand_Help(t *testing.T) {
	called := false
	factory := func(string) (*app.Container, error) {
		called = true
		return nil, errors.New("should not be called")
	}

	root := NewRootCommand(factory, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	err := root.Execute()

	assert.NoError(t, err)
	assert.False(t, called, "help must not build the container")
	assert.Contains(t, buf.String(), "Task Management:")
	assert.Contains(t, buf.String(), "Subscriptions:")
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand(app.New, "1.2.3")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestNewRootCommand_InitializesFreshDataDir(t *testing.T) {
	dataDir := filepath.Join(newDataDir(t), "fresh")

	out, err := runCLI(t, dataDir, "add", "Pay rent")

	require.NoError(t, err)
	assert.Contains(t, out, "Pay rent")
	for _, name := range []string{"tasks.json", "subscribers.json", "pending_subscriptions.json"} {
		_, statErr := os.Stat(filepath.Join(dataDir, name))
		assert.NoError(t, statErr, name)
	}
	tasks := storedTasks(t, dataDir)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pay rent", tasks[0].Name)
}

func TestNewRootCommand_ConfigDoesNotCreateCollections(t *testing.T) {
	dataDir := newDataDir(t)

	_, err := runCLI(t, dataDir, "config", "show")

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dataDir, "tasks.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewRootCommand_FactoryError(t *testing.T) {
	root := NewRootCommand(func(string) (*app.Container, error) {
		return nil, errors.New("boom")
	}, "test-version")
	root.SetArgs([]string{"list"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize: boom")
}

func TestNewRootCommand_ConfigWarnings(t *testing.T) {
	dataDir := newDataDir(t)
	_, err := runCLI(t, dataDir, "init")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(domain.DataConfigPath(dataDir), []byte("[log]\ncolour = \"red\"\n"), 0o644))

	root := NewRootCommand(app.New, "test-version")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--data-dir", dataDir, "list"})

	require.NoError(t, root.Execute())
	assert.Contains(t, errOut.String(), "Warning: unknown key in [log]: colour")
}

func TestInitCommand(t *testing.T) {
	dataDir := newDataDir(t)

	out, err := runCLI(t, dataDir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized task-reminder in")

	out, err = runCLI(t, dataDir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Already initialized")

	assert.True(t, openContainer(t, dataDir).StoreInitializer.IsInitialized())
}

func TestSkipStoreInit(t *testing.T) {
	root := NewRootCommand(app.New, "test-version")
	root.InitDefaultHelpCmd()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "init", args: []string{"init"}, want: true},
		{name: "config subcommand inherits", args: []string{"config", "show"}, want: true},
		{name: "help", args: []string{"help"}, want: true},
		{name: "list", args: []string{"list"}, want: false},
		{name: "serve", args: []string{"serve"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := root.Find(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, skipStoreInit(cmd))
		})
	}
}
