package main

import (
	"context"
	"fmt"
	"log"

	"github.com/pushchain/ghapk/internal/catalog"
	"github.com/pushchain/ghapk/internal/exitcodes"
	"github.com/pushchain/ghapk/internal/selection"
	"github.com/pushchain/ghapk/internal/tui"
)

// runSession fetches the catalog once and hands it to the interactive
// session. Every failure before the session starts is fatal.
func runSession(ctx context.Context, d *Deps) error {
	repo := d.Cfg.Owner + "/" + d.Cfg.Repo
	d.Printer.Info(fmt.Sprintf("Fetching releases of %s...", repo))

	cat, err := loadCatalog(ctx, d)
	if err != nil {
		return err
	}
	log.Printf("ghapk %s: loaded %d releases of %s, adb server %s", Version, cat.Len(), repo, d.Cfg.ADBAddr())
	if cat.Len() == 0 {
		d.Printer.Warn(fmt.Sprintf("No releases found for %s", repo))
	}

	if !d.IsTTY() {
		return exitcodes.TerminalErr("ghapk needs an interactive terminal", nil)
	}

	opts := tui.Options{Title: repo, Runner: d.Runner, Context: ctx}
	if latest, ok := cat.Latest(); ok {
		opts.Latest = latest.Tag
	}

	if err := d.RunTUI(tui.New(selection.New(cat), opts)); err != nil {
		return exitcodes.TerminalErr("interactive session failed", err)
	}
	return nil
}

func loadCatalog(ctx context.Context, d *Deps) (*catalog.Catalog, error) {
	if d.ListTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.ListTimeout)
		defer cancel()
	}

	rels, err := d.Releases.ListReleases(ctx)
	if err != nil {
		return nil, exitcodes.RegistryErr("failed to list releases", err)
	}

	out := make([]catalog.Release, 0, len(rels))
	for _, r := range rels {
		out = append(out, r.ToCatalog())
	}
	return catalog.New(out), nil
}
