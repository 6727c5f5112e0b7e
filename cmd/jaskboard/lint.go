package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/jaskboard/internal/board"
	"github.com/jask/jaskboard/internal/drag"
)

var errBoardInvalid = errors.New("board is not draggable")

func newLintCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [board.toml]",
		Short: "Check a board file's markers and item ids",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			path := cfg.Board.Path
			if len(args) == 1 {
				path = args[0]
			}
			spec, err := loadBoard(path)
			if err != nil {
				return err
			}
			return lintBoard(cmd.OutOrStdout(), spec, markersOf(cfg))
		},
	}
}

// lintBoard prints marker warnings and then builds an engine over the
// board, which is the only way to see duplicate or missing ids.
func lintBoard(w io.Writer, spec board.Spec, m board.Markers) error {
	warn := color.New(color.FgYellow).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()
	good := color.New(color.FgGreen).SprintFunc()

	doc := board.Build(spec, m)
	for _, lw := range board.Lint(doc, m) {
		fmt.Fprintf(w, "%s %s\n", warn("warn"), lw)
	}

	container, err := board.Container(doc, m.Container)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", bad("error"), err)
		return errBoardInvalid
	}
	var opts []drag.Option
	if m.Handle != "" {
		opts = append(opts, drag.WithHandle(m.Handle))
	}
	engine, err := drag.New(container, m.Item, opts...)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", bad("error"), err)
		return errBoardInvalid
	}
	defer engine.Close()
	fmt.Fprintf(w, "%s %d draggable cards\n", good("ok"), engine.Registry().Len())
	return nil
}
