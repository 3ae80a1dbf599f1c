package report

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/handiism/installer-tracker/internal/io"
	"github.com/handiism/installer-tracker/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DefaultTitle is the page heading.
const DefaultTitle = "Installers"

// Meta describes the run a report was generated for.
type Meta struct {
	Title       string // defaults to DefaultTitle
	RunID       string
	GeneratedAt time.Time
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Generate renders the report for configs and state and writes it to path.
func Generate(path string, configs []model.SoftwareConfig, state model.State, meta Meta) error {
	page, err := Render(filepath.Dir(path), configs, state, meta)
	if err != nil {
		return err
	}
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := ioutils.WriteFileAtomic(path, page); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Render returns the HTML page. Local paths are linked relative to reportDir.
func Render(reportDir string, configs []model.SoftwareConfig, state model.State, meta Meta) ([]byte, error) {
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(reportDir, configs, state, meta)), &body); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(meta.Title))
	page.WriteString("<style>body{font-family:sans-serif;margin:2em}table{border-collapse:collapse}" +
		"th,td{border:1px solid #ccc;padding:.4em .8em;text-align:left}.error{color:#b00}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Markdown returns the Markdown source of the report.
func Markdown(reportDir string, configs []model.SoftwareConfig, state model.State, meta Meta) string {
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeCell(meta.Title))

	b.WriteString("| Software | Version | Download | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, cfg := range configs {
		entry, ok := state[cfg.Title]
		if !ok {
			entry = model.DownloadState{SoftwareConfig: cfg}
		}

		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			titleCell(cfg),
			escapeCell(orDash(entry.Version)),
			downloadCell(reportDir, entry.LocalPath),
			statusCell(entry),
		)
	}
	b.WriteString("\n")

	if !meta.GeneratedAt.IsZero() || meta.RunID != "" {
		var footer []string
		if !meta.GeneratedAt.IsZero() {
			footer = append(footer, "Generated "+meta.GeneratedAt.UTC().Format(time.RFC3339))
		}
		if meta.RunID != "" {
			footer = append(footer, "run "+escapeCell(meta.RunID))
		}
		b.WriteString("_" + strings.Join(footer, ", ") + "_\n")
	}

	return b.String()
}

func titleCell(cfg model.SoftwareConfig) string {
	if cfg.DownloadPage == "" {
		return escapeCell(cfg.Title)
	}
	return fmt.Sprintf("[%s](<%s>)", escapeCell(cfg.Title), cfg.DownloadPage)
}

func downloadCell(reportDir, localPath string) string {
	if localPath == "" {
		return "-"
	}
	link := localPath
	if rel, err := filepath.Rel(reportDir, localPath); err == nil {
		link = rel
	}
	return fmt.Sprintf("[%s](<%s>)", escapeCell(ioutils.FileNameOf(localPath)), filepath.ToSlash(link))
}

func statusCell(entry model.DownloadState) string {
	if entry.Failed() {
		return "**failed:** " + escapeCell(*entry.ErrorFlag)
	}
	if entry.Version == "" {
		return "pending"
	}
	return "ok"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"<", "&lt;",
	">", "&gt;",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"\n", " ",
	"\r", "",
)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
