package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskboard/internal/drag"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultItemMarker, cfg.Markers.Item)
	require.Equal(t, DefaultHandleMarker, cfg.Markers.Handle)
	require.Equal(t, DefaultContainerMarker, cfg.Markers.Container)
	require.True(t, cfg.Board.Watch)
	require.Equal(t, drag.StrategyMovement, cfg.Strategy())
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[board]
path = "/tmp/board.toml"
watch = false

[markers]
item = "pr-draggable-element"
handle = ""

[drag]
strategy = "pointer"
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/board.toml", cfg.Board.Path)
	require.False(t, cfg.Board.Watch)
	require.Equal(t, "pr-draggable-element", cfg.Markers.Item)
	require.Empty(t, cfg.Markers.Handle)
	require.Equal(t, drag.StrategyPointer, cfg.Strategy())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("JASKBOARD_DRAG_STRATEGY", "pointer")
	t.Setenv("JASKBOARD_MARKERS_ITEM", "data-card")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, "data-card", cfg.Markers.Item)
	require.Equal(t, drag.StrategyPointer, cfg.Strategy())
}

func TestLoadFileRejectsBadStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[drag]\nstrategy = \"teleport\"\n"), 0o644))

	_, err := LoadFile(path)
	require.ErrorContains(t, err, "drag.strategy")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"ok", Config{Markers: MarkerConfig{Item: "x"}}, ""},
		{"empty item", Config{Markers: MarkerConfig{Item: "  "}}, "markers.item"},
		{"bad strategy", Config{Markers: MarkerConfig{Item: "x"}, Drag: DragConfig{Strategy: "warp"}}, "drag.strategy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Config{
		Board:   BoardConfig{Path: "board.toml", Watch: true},
		Markers: MarkerConfig{Container: "data-board", Item: "data-card", Handle: "data-grip"},
		Drag:    DragConfig{Strategy: "pointer"},
		Notify:  NotifyConfig{Desktop: true},
		Log:     LogConfig{Path: "/tmp/jb.log", Level: "debug"},
	}
	require.NoError(t, Save(path, want))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultItemMarker, cfg.Markers.Item)
	require.Equal(t, "movement", cfg.Drag.Strategy)
}
