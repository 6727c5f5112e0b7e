package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskboard/internal/board"
	"github.com/jask/jaskboard/internal/config"
)

var testMarkers = board.Markers{Container: "data-board", Item: "data-draggable", Handle: "data-drag-handle"}

func TestLintBoardDefault(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, lintBoard(&out, board.Default(), testMarkers))
	require.Contains(t, out.String(), "3 draggable cards")
	require.NotContains(t, out.String(), "warn")
}

func TestLintBoardDuplicateIDs(t *testing.T) {
	spec, err := board.Parse([]byte("[[card]]\nid = \"a\"\n[[card]]\nid = \"a\"\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	err = lintBoard(&out, spec, testMarkers)
	require.ErrorIs(t, err, errBoardInvalid)
	require.Contains(t, out.String(), "not unique")
}

func TestLintBoardMisspeltMarker(t *testing.T) {
	spec, err := board.Parse([]byte("[[card]]\nid = \"a\"\n[card.attrs]\ndata-dragable = \"\"\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, lintBoard(&out, spec, testMarkers))
	require.Contains(t, out.String(), "data-dragable")
}

func TestLintCommandReadsBoardArg(t *testing.T) {
	dir := t.TempDir()
	boardPath := filepath.Join(dir, "board.toml")
	require.NoError(t, os.WriteFile(boardPath, []byte("[[card]]\nid = \"x\"\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "absent.toml"), "lint", boardPath})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "1 draggable cards")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jaskboard", "config.toml")
	require.NoError(t, initConfig(path, false))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultItemMarker, cfg.Markers.Item)

	require.Error(t, initConfig(path, false))
	require.NoError(t, initConfig(path, true))
}
