package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/cardsheet/pkg/config"
	"github.com/Dicklesworthstone/cardsheet/pkg/content"
	"github.com/Dicklesworthstone/cardsheet/pkg/logging"
	"github.com/Dicklesworthstone/cardsheet/pkg/ui"
	"github.com/Dicklesworthstone/cardsheet/pkg/version"
	"github.com/Dicklesworthstone/cardsheet/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Path to a YAML config file")
	contentPath := flag.String("content", "", "Markdown file shown in the card (overrides content.path)")
	debug := flag.Bool("debug", false, "Write debug logs to the configured log file")
	flag.Parse()

	if *help {
		fmt.Println("Usage: cardsheet [options]")
		fmt.Println("\nA draggable card docked to the bottom of the terminal.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("cardsheet version %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *contentPath != "" {
		cfg.Content.Path = *contentPath
	}

	log, err := newLogger(cfg, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Error("stdout is not a terminal")
		fmt.Fprintln(os.Stderr, "cardsheet needs an interactive terminal.")
		exit(log, 1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("exited with error", logging.Err(err))
		fmt.Fprintf(os.Stderr, "Error running cardsheet: %v\n", err)
		exit(log, 1)
	}
}

// exit flushes the log and exits with code.
func exit(log logging.Log, code int) {
	_ = log.Sync()
	os.Exit(code)
}

func newLogger(cfg config.Config, debug bool) (logging.Log, error) {
	if !cfg.Log.Enabled && !debug {
		return logging.Nop(), nil
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if debug {
		level = logging.LevelDebug
	}
	logger, err := logging.New(cfg.Log.Path, level)
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func run(cfg config.Config, log logging.Log) error {
	markdown, err := content.Load(cfg.Content.Path)
	if err != nil {
		return err
	}
	host := content.NewMarkdownHost(markdown, "", cfg.Terminal.UnitsPerRow)

	zones := zone.New()
	defer zones.Close()

	m, err := ui.NewSheetModel(ui.SheetOptions{
		Config: cfg,
		Host:   host,
		Logger: log,
		Zones:  zones,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Content.Watch && cfg.Content.Path != "" {
		w, err := watcher.New(cfg.Content.Path, func() { p.Send(ui.ContentChangedMsg{}) }, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			return err
		}
		return m.Err()
	})

	log.Info("started",
		logging.String("version", version.Version),
		logging.String("content", cfg.Content.Path),
	)
	return g.Wait()
}
