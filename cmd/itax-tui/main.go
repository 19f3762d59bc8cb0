package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itax/internal/tui"
)

func main() {
	// An optional record file pre-fills the form
	recordPath := ""
	if len(os.Args) > 1 {
		recordPath = os.Args[1]
		if _, err := os.Stat(recordPath); os.IsNotExist(err) {
			fmt.Printf("Error: record file not found: %s\n", recordPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(recordPath, nil)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
