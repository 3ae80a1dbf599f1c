package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/handiism/installer-tracker/internal/app"
	"github.com/handiism/installer-tracker/internal/config"
	"github.com/handiism/installer-tracker/internal/update"
)

// CLI is the command line definition. Flags and environment variables override
// the settings file, which overrides the built-in defaults.
type CLI struct {
	Config    string `short:"c" help:"Settings file path" default:"settings.json" env:"INSTALLER_TRACKER_CONFIG"`
	Softwares string `help:"Software list (.json, .yaml or .toml)" env:"INSTALLER_TRACKER_SOFTWARES"`
	State     string `help:"State file" env:"INSTALLER_TRACKER_STATE"`
	Downloads string `help:"Downloads directory" env:"INSTALLER_TRACKER_DOWNLOADS"`
	Report    string `help:"HTML report output" env:"INSTALLER_TRACKER_REPORT"`
	Metrics   string `name:"metrics-file" help:"Prometheus textfile output (disabled when empty)" env:"INSTALLER_TRACKER_METRICS_FILE"`
	Verbose   bool   `short:"v" help:"Enable verbose logging" env:"INSTALLER_TRACKER_VERBOSE"`

	Run   RunCmd   `cmd:"" default:"withargs" help:"Update every tracked installer and regenerate the report"`
	Check CheckCmd `cmd:"" help:"Show available versions without downloading anything"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// settings loads the settings file and applies flag overrides.
func (c *CLI) settings() (*config.Settings, error) {
	s, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", c.Config, err)
	}

	overrides := []struct {
		flag   string
		target *string
	}{
		{c.Softwares, &s.SoftwaresFile},
		{c.State, &s.StateFile},
		{c.Downloads, &s.DownloadsPath},
		{c.Report, &s.ReportFile},
		{c.Metrics, &s.MetricsFile},
	}
	for _, o := range overrides {
		if o.flag != "" {
			*o.target = o.flag
		}
	}
	return s, nil
}

// RunCmd performs an update pass.
type RunCmd struct{}

func (r *RunCmd) Run(root *CLI) error {
	s, err := root.settings()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("Starting update", "settings", root.Config, "softwares", s.SoftwaresFile, "downloads", s.DownloadsPath)

	runID := uuid.NewString()
	logger := slog.Default().With("run_id", runID)
	result, err := app.Run(ctx, app.Options{
		Settings: s,
		RunID:    runID,
		Progress: func(event update.ProgressEvent) { logEvent(logger, event) },
	})
	if err != nil {
		return err
	}

	sum := result.Summary
	logger.Info("Run complete",
		"titles", sum.Total,
		"updated", sum.Updated,
		"unchanged", sum.Unchanged,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
		"duration", sum.Duration.Round(time.Millisecond))

	if ctx.Err() != nil {
		return errCancelled
	}
	return nil
}

// CheckCmd prints stored and available versions.
type CheckCmd struct{}

func (c *CheckCmd) Run(root *CLI) error {
	s, err := root.settings()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	results, err := app.Check(ctx, app.Options{
		Settings: s,
		Progress: func(event update.ProgressEvent) { logEvent(slog.Default(), event) },
	})
	if err != nil {
		return err
	}

	changed := lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500"))
	failed := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Software", "Stored", "Available", "Status")
	for _, r := range results {
		status := "up to date"
		switch {
		case r.Err != nil:
			status = failed.Render(r.Err.Error())
		case r.Changed():
			status = changed.Render("update available")
		}
		t.Row(r.Title, dash(r.CurrentVersion), dash(r.Version), status)
	}
	fmt.Println(t.Render())

	if ctx.Err() != nil {
		return errCancelled
	}
	return nil
}

var errCancelled = errors.New("cancelled")

// logEvent maps progress events onto slog levels.
func logEvent(logger *slog.Logger, event update.ProgressEvent) {
	var attrs []any
	if event.Title != "" {
		attrs = append(attrs, "title", event.Title)
	}

	ctx := context.Background()
	switch event.Level {
	case update.LevelError:
		logger.Log(ctx, slog.LevelError, event.Message, attrs...)
	case update.LevelWarning:
		logger.Log(ctx, slog.LevelWarn, event.Message, attrs...)
	case update.LevelVerbose:
		logger.Log(ctx, slog.LevelDebug, event.Message, attrs...)
	default:
		logger.Log(ctx, slog.LevelInfo, event.Message, attrs...)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("installer-tracker"),
		kong.Description("Track and mirror the latest installers of a list of software titles."),
		kong.UsageOnError(),
	)

	if err := kctx.Run(&cli); err != nil {
		if errors.Is(err, errCancelled) {
			slog.Warn("Interrupted")
			os.Exit(130)
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
