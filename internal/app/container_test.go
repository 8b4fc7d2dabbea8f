package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/testutil"
	"github.com/runoshun/task-reminder/internal/usecase"
)

func newTestContainer(t *testing.T, configTOML string) *Container {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	if configTOML != "" {
		require.NoError(t, os.WriteFile(domain.DataConfigPath(dataDir), []byte(configTOML), 0o644))
	}
	c, err := New(dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_Defaults(t *testing.T) {
	c := newTestContainer(t, "")

	assert.True(t, filepath.IsAbs(c.Config.DataDir))
	assert.Equal(t, domain.DefaultStorageFormat, c.AppConfig.Storage.Format)
	assert.NotNil(t, c.Store)
	assert.NotNil(t, c.Mailer)
	assert.NotNil(t, c.SlogLogger)
	assert.False(t, c.StoreInitializer.IsInitialized())

	require.NoError(t, c.EnsureInitialized())
	assert.True(t, c.StoreInitializer.IsInitialized())

	ok, err := c.TaskService().AddTask(context.Background(), "Buy milk")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = os.Stat(filepath.Join(c.Config.DataDir, "tasks.json"))
	assert.NoError(t, err)
}

func TestNew_YAMLStorage(t *testing.T) {
	c := newTestContainer(t, "[storage]\nformat = \"yaml\"\n")
	_, err := c.InitStoreUseCase().Execute(context.Background(), usecase.InitStoreInput{})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(c.Config.DataDir, "tasks.yaml"))
	assert.NoError(t, err)
}

func TestNew_OutboxMail(t *testing.T) {
	c := newTestContainer(t, "")
	_, err := c.InitStoreUseCase().Execute(context.Background(), usecase.InitStoreInput{})
	require.NoError(t, err)

	ok, err := c.SubscriptionService().SubscribeEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := os.ReadDir(filepath.Join(c.Config.DataDir, domain.DefaultOutboxDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.DataConfigPath(dataDir), []byte("[storage]\nformat = \"xml\"\n"), 0o644))

	_, err := New(dataDir)

	assert.ErrorIs(t, err, domain.ErrUnknownCodec)
}

func TestNewWithDeps(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	c := NewWithDeps(Config{DataDir: "/tmp/data"}, Deps{
		Store:            store,
		StoreInitializer: &testutil.MockStoreInitializer{Initialized: true},
		Tokens:           &testutil.MockTokenGenerator{},
		Mailer:           &testutil.MockMailer{},
	})

	assert.NotNil(t, c.Clock)
	assert.NotNil(t, c.Logger)
	assert.NotNil(t, c.AppConfig)
	assert.NoError(t, c.Close())
	assert.NotNil(t, c.WebServer().App())

	out, err := c.AddTaskUseCase().Execute(context.Background(), usecase.AddTaskInput{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "task-1", out.Task.ID)
}

func TestContainer_MirrorLog(t *testing.T) {
	c := newTestContainer(t, "")
	var buf bytes.Buffer

	c.MirrorLog(&buf)
	c.Logger.Info("server", "listening")

	assert.Contains(t, buf.String(), "listening")

	// Loggers without mirroring support are left alone.
	NewWithDeps(Config{}, Deps{}).MirrorLog(&buf)
}

func TestContainer_EnsureInitialized(t *testing.T) {
	t.Run("initializes a fresh store once", func(t *testing.T) {
		si := &testutil.MockStoreInitializer{}
		c := NewWithDeps(Config{}, Deps{StoreInitializer: si})

		require.NoError(t, c.EnsureInitialized())
		require.NoError(t, c.EnsureInitialized())

		assert.True(t, si.Initialized)
		assert.Equal(t, 1, si.Calls)
	})

	t.Run("wraps initialization errors", func(t *testing.T) {
		si := &testutil.MockStoreInitializer{InitErr: errors.New("read-only file system")}
		c := NewWithDeps(Config{}, Deps{StoreInitializer: si})

		err := c.EnsureInitialized()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "initialize store: read-only file system")
	})

	t.Run("keeps existing data", func(t *testing.T) {
		c := newTestContainer(t, "")
		require.NoError(t, c.EnsureInitialized())
		ok, err := c.TaskService().AddTask(context.Background(), "Keep me")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, c.EnsureInitialized())

		assert.Len(t, c.TaskService().GetAllTasks(context.Background()), 1)
	})
}
