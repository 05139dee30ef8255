package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pushchain/ghapk/internal/config"
	"github.com/pushchain/ghapk/internal/deploy"
	"github.com/pushchain/ghapk/internal/device"
	"github.com/pushchain/ghapk/internal/exitcodes"
	"github.com/pushchain/ghapk/internal/registry"
	"github.com/pushchain/ghapk/internal/tui"
	"github.com/pushchain/ghapk/internal/ui"
)

// listTimeout bounds the startup release listing. Pipeline calls are not
// bounded.
const listTimeout = 30 * time.Second

// ReleaseLister abstracts the registry listing for testability.
type ReleaseLister interface {
	ListReleases(ctx context.Context) ([]registry.Release, error)
}

// Deps holds all injectable dependencies for the root command.
type Deps struct {
	Cfg         config.Config
	Releases    ReleaseLister
	Runner      tui.Runner
	Printer     ui.Printer
	IsTTY       func() bool
	RunTUI      func(m tea.Model) error
	ListTimeout time.Duration

	logFile io.Closer
}

// newDeps loads configuration and builds production dependencies.
func newDeps() (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logFile, err := setupLogging(cfg.DebugLog)
	if err != nil {
		return nil, exitcodes.WrapError(exitcodes.ConfigError, "cannot open debug log", err)
	}

	reg := registry.New(cfg.APIURL, cfg.Owner, cfg.Repo, cfg.Token)
	pipeline := deploy.New(reg, device.NewADB(cfg.ADBBin), deploy.Options{
		ScratchPath: cfg.ScratchPath,
		RemotePath:  cfg.RemotePath,
		DeviceHost:  cfg.ADBHost,
		DevicePort:  cfg.ADBPort,
	})

	return &Deps{
		Cfg:         cfg,
		Releases:    reg,
		Runner:      pipeline,
		Printer:     ui.NewPrinter(os.Stdout),
		IsTTY:       ui.IsInteractive,
		RunTUI:      runInteractive,
		ListTimeout: listTimeout,
		logFile:     logFile,
	}, nil
}

// Close releases the diagnostics log, if any.
func (d *Deps) Close() {
	if d.logFile != nil {
		_ = d.logFile.Close()
	}
}

// setupLogging routes the standard logger to path, or discards it when path
// is empty. The terminal belongs to the session.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(path, "ghapk")
	if err != nil {
		return nil, err
	}
	return f, nil
}

// runInteractive launches the Bubble Tea program and blocks until quit.
func runInteractive(m tea.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithInput(os.Stdin),
		tea.WithOutput(os.Stdout),
	)
	_, err := p.Run()

	// Flush stale terminal responses that arrive after the alt screen exits
	ui.ResetTerminalAfterTUI()
	return err
}
