package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deedflow/scrublog/internal/config"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrublog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))

	watcher, err := config.NewWatcher(path)
	require.NoError(t, err)

	reloaded := make(chan *config.Config, 1)
	go watcher.Watch(context.Background(),
		func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		},
		func(err error) { t.Logf("watch error: %v", err) },
	)
	defer func() { require.NoError(t, watcher.Stop()) }()

	// Give the watch loop a moment to start before touching the file.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "debug", cfg.Logging.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReportsBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrublog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))

	watcher, err := config.NewWatcher(path)
	require.NoError(t, err)

	errs := make(chan error, 1)
	go watcher.Watch(context.Background(),
		func(cfg *config.Config) { t.Error("broken config must not reload") },
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	)
	defer func() { require.NoError(t, watcher.Stop()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0o600))

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "logging.format")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for load error")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrublog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))

	watcher, err := config.NewWatcher(path)
	require.NoError(t, err)

	reloaded := make(chan struct{}, 1)
	go watcher.Watch(context.Background(),
		func(cfg *config.Config) {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		},
		func(err error) { t.Logf("watch error: %v", err) },
	)
	defer func() { require.NoError(t, watcher.Stop()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600))

	select {
	case <-reloaded:
		t.Fatal("sibling file change must not trigger a reload")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_StopUnblocksWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrublog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: {}\n"), 0o600))

	watcher, err := config.NewWatcher(path)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		watcher.Watch(context.Background(), func(*config.Config) {}, func(error) {})
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, watcher.Stop())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after Stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := config.NewWatcher(filepath.Join(t.TempDir(), "absent", "scrublog.yaml"))
	assert.Error(t, err)
}
