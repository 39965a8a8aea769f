package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/nurture/internal/app"
	"github.com/abelbrown/nurture/internal/logging"
	"github.com/abelbrown/nurture/internal/notify"
	"github.com/abelbrown/nurture/internal/store"
	"github.com/abelbrown/nurture/internal/ui"
)

func main() {
	// Data directory: ~/.nurture/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get home directory: %v\n", err)
		os.Exit(1)
	}
	dataDir := filepath.Join(homeDir, ".nurture")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	st := store.New(filepath.Join(dataDir, "nurture.json"))

	// Load failures are recovered to defaults; startup never aborts on a
	// bad document.
	state, err := app.New(st, notify.LogNotifier{})
	if err != nil {
		logging.Warn("recovered from persisted state problem", "err", err)
	}

	exportPath := filepath.Join(dataDir, "feed_history.json")
	program := tea.NewProgram(ui.New(state, exportPath), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
