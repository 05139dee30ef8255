package main

import "github.com/pushchain/ghapk/internal/ui"

func main() {
	// Initialize terminal FIRST, before lipgloss or bubbletea query it.
	ui.InitTerminal()

	Execute()
}
