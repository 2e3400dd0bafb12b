package xconf

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReload(t *testing.T) {
	path := writeFile(t, "config.yaml", "filelog:\n  directory: a\n")
	cfg, err := New(path)
	require.NoError(t, err)

	reloaded := make(chan error, 8)
	w, err := Watch(cfg, func(_ Config, err error) {
		reloaded <- err
	}, WithDebounce(20*time.Millisecond), WithDebounce(0))
	require.NoError(t, err)
	w.Start()
	w.Start()
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("filelog:\n  directory: b\n"), 0o600))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback not called")
	}
	assert.Equal(t, "b", cfg.Client().String("filelog.directory"))
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "config.yaml", "a: 1\n")
	cfg, err := New(path)
	require.NoError(t, err)

	var mu sync.Mutex
	calls := 0
	w, err := Watch(cfg, func(Config, error) {
		mu.Lock()
		calls++
		mu.Unlock()
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	w.Start()

	require.NoError(t, os.WriteFile(path+".bak", []byte("a: 2\n"), 0o600))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Stop())

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestWatchStopIdempotent(t *testing.T) {
	cfg, err := New(writeFile(t, "config.yaml", "a: 1\n"))
	require.NoError(t, err)

	w, err := Watch(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	w.Start()
}

func TestWatchErrors(t *testing.T) {
	bytesCfg, err := NewFromBytes([]byte("a: 1"), FormatYAML)
	require.NoError(t, err)
	_, err = Watch(bytesCfg, nil)
	assert.ErrorIs(t, err, ErrNotFromFile)

	_, err = Watch(fakeConfig{}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedConfig)
}

type fakeConfig struct{ Config }
