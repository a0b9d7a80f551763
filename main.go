package main

import (
	"fmt"
	"os"

	"rihla/cmd"
	"rihla/internal/api"
	"rihla/internal/db"
	"rihla/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if config.Token == "" {
		fmt.Fprintln(os.Stderr, "ℹ  No RIHLA_TOKEN set — sign in on the platform and export your token")
	}

	client := api.NewClient(config.APIURL, config.Token)

	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	p := tea.NewProgram(ui.New(database, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
