package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()
		opts, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		assert.Equal(t, Defaults(), opts)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vlist.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"item_height": 3, "smooth_scroll": false}`), 0o644))

		opts, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, opts.ItemHeight)
		assert.False(t, opts.SmoothScroll)
		assert.Equal(t, 30, opts.LeadingBuffer)
		assert.True(t, opts.Mouse)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vlist.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"item_height":`), 0o644))
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vlist.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"frame_ms": 0, "leading_buffer": -1}`), 0o644))
		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidFrame)
		require.ErrorIs(t, err, ErrInvalidBuffer)
	})
}

func TestConversions(t *testing.T) {
	t.Parallel()

	opts := Defaults()
	sc := opts.ScrollConfig()
	assert.Equal(t, 300*time.Millisecond, sc.Duration)
	assert.Equal(t, 16*time.Millisecond, sc.Frame)
	assert.Equal(t, 500, sc.SmoothThreshold)

	rc := opts.ReconcileConfig()
	assert.Equal(t, 30, rc.LeadingBuffer)
	assert.Equal(t, 30, rc.TrailingBuffer)
	assert.Equal(t, 100*time.Millisecond, opts.IdleDelayTime())
}

func TestSetField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "vlist.json")
	require.NoError(t, SetField(path, "trailing_buffer", 12))
	require.NoError(t, SetField(path, "mouse", false))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, opts.TrailingBuffer)
	assert.False(t, opts.Mouse)
	assert.Equal(t, 30, opts.LeadingBuffer)

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, SetField(path, "nope", 1), ErrUnknownField)
	})

	t.Run("invalid value leaves the file alone", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vlist.json")
		require.NoError(t, SetField(path, "frame_ms", 8))
		require.ErrorIs(t, SetField(path, "frame_ms", 0), ErrInvalidFrame)
		require.Error(t, SetField(path, "mouse", "sometimes"))

		opts, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8, opts.Frame)
		assert.True(t, opts.Mouse)
	})
}

func TestFieldNames(t *testing.T) {
	t.Parallel()

	names := FieldNames()
	assert.Contains(t, names, "item_height")
	assert.Contains(t, names, "debug")
	assert.Len(t, names, 10)
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vlist.json")
	require.NoError(t, Init(path, false))
	exists, err := Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.Error(t, Init(path, false))
	require.NoError(t, SetField(path, "item_height", 7))
	require.NoError(t, Init(path, true))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), opts)
}

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.json")
	assert.Equal(t, "/tmp/custom.json", GlobalConfig())
}

func TestSchema(t *testing.T) {
	t.Parallel()

	data, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"item_height"`)
	assert.Contains(t, string(data), `"smooth_threshold"`)
	assert.Contains(t, string(data), "vlist options")
}
