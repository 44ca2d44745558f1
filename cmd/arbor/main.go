package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"arbor/internal/adapters/clipboard"
	"arbor/internal/adapters/filesystem"
	"arbor/internal/adapters/memory"
	"arbor/internal/adapters/sqlite"
	"arbor/internal/adapters/tui"
	"arbor/internal/application"
	"arbor/internal/config"
	"arbor/internal/ports"
	"arbor/internal/search"
)

func main() {
	snapshots, err := openSnapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer snapshots.Close()

	svc := application.NewTreeService(memory.NewStore())
	session := application.NewSession(svc, snapshots, application.Options{
		DiscardEmptyNodes:      config.DiscardEmptyNodes(),
		AllowRootCascadeDelete: config.AllowRootCascadeDelete(),
	})

	ctx := context.Background()
	if err := session.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := session.EnsureRoot(ctx, "New Map"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(tui.Config{
		Session: session,
		// The search overlay lists nothing until the user types.
		Searcher:        search.NewFuzzy(false),
		Clipboard:       clipboard.New(),
		SequenceTimeout: config.SequenceTimeout(),
		ExportPath:      "arbor.svg",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openSnapshots() (ports.SnapshotStore, error) {
	if config.Backend() == "sqlite" {
		return sqlite.Open(config.DBPath())
	}
	return filesystem.NewSnapshotStore(config.SnapshotPath()), nil
}
