package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/jaskboard/internal/board"
	"github.com/jask/jaskboard/internal/config"
	"github.com/jask/jaskboard/internal/drag"
	"github.com/jask/jaskboard/internal/logger"
	"github.com/jask/jaskboard/internal/notify"
	"github.com/jask/jaskboard/internal/tui"
	"github.com/jask/jaskboard/internal/watch"
)

const reloadDebounce = 150 * time.Millisecond

type rootFlags struct {
	configPath string
	boardPath  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "jaskboard",
		Short:         "Rearrange cards on a terminal board with the mouse",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			run(flags)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.Path()+")")
	cmd.PersistentFlags().StringVar(&flags.boardPath, "board", "", "board file; overrides board.path")

	cmd.AddCommand(newLintCmd(flags), newConfigCmd(flags))
	return cmd
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	if flags.boardPath != "" {
		cfg.Board.Path = flags.boardPath
	}
	return cfg, nil
}

func markersOf(cfg config.Config) board.Markers {
	return board.Markers{
		Container: cfg.Markers.Container,
		Item:      cfg.Markers.Item,
		Handle:    cfg.Markers.Handle,
	}
}

func loadBoard(path string) (board.Spec, error) {
	if path == "" {
		return board.Default(), nil
	}
	return board.Load(path)
}

func run(flags *rootFlags) {
	cfg, err := loadConfig(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, closer, err := logger.New(logger.Options{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closer.Close()

	spec, err := loadBoard(cfg.Board.Path)
	if err != nil {
		log.Fatalf("board: %v", err)
	}
	lg.WithField("board", cfg.Board.Path).Info("starting")

	var sink drag.Sink = notify.LogSink{Log: logger.Component(lg, "layout")}
	if cfg.Notify.Desktop {
		sink = notify.Multi{sink, notify.Desktop{Log: logger.Component(lg, "desktop")}}
	}

	app := tui.New(spec, tui.Options{
		Markers:   markersOf(cfg),
		Strategy:  cfg.Strategy(),
		BoardPath: cfg.Board.Path,
		Log:       logger.Component(lg, "tui"),
		Sink:      sink,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.Board.Watch && cfg.Board.Path != "" {
		w := watch.New(cfg.Board.Path, reloadDebounce, logger.Component(lg, "watch"), func(s board.Spec, err error) {
			p.Send(tui.BoardReloadedMsg{Spec: s, Err: err})
		})
		if err := w.Start(); err != nil {
			lg.WithError(err).Warn("board watcher disabled")
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
