package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/handiism/installer-tracker/internal/config"
	"github.com/handiism/installer-tracker/internal/tui"
)

var cli struct {
	Config  string `short:"c" help:"Settings file path" default:"settings.json" env:"INSTALLER_TRACKER_CONFIG"`
	Verbose bool   `short:"v" help:"Show verbose progress lines" env:"INSTALLER_TRACKER_VERBOSE"`
}

func main() {
	_ = godotenv.Load()
	kong.Parse(&cli, kong.Name("installer-tracker-tui"), kong.Description("Interactive view of an installer-tracker run."))

	settings, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, cli.Verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
