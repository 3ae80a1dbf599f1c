package scrape

import (
	"errors"
	"testing"

	"github.com/handiism/installer-tracker/internal/model"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "longest wins", path: "app-1.2-full-10.20.3000.exe", want: "10.20.3000"},
		{name: "underscores", path: "/dl/setup_7_2_1.exe", want: "7_2_1"},
		{name: "tie keeps first", path: "tool-1.23-build-4.56.msi", want: "1.23"},
		{name: "full url", path: "https://cdn.example/releases/9.1.22/FieldWorks_9.1.22_Online_x64.exe", want: "9.1.22"},
		{name: "plain number run", path: "/files/setup2024.exe", want: "2024"},
		{name: "two digits too short", path: "/x/v12.exe", want: ""},
		{name: "no digits", path: "nodigitshere.exe", wantErr: true},
		{name: "single digits only", path: "a1b2c3.exe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVersion(tt.path)
			if tt.wantErr || tt.want == "" {
				if !errors.Is(err, ErrNoVersionFound) {
					t.Errorf("ExtractVersion(%q) error = %v, want ErrNoVersionFound", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractVersion(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLocateDownloadPath(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		patterns Patterns
		want     string
		wantErr  error
	}{
		{
			name: "default patterns",
			html: `<a href="/x/setup.exe">dl</a>`,
			want: "/x/setup.exe",
		},
		{
			name: "first matching tag in document order",
			html: `<html><body>
				<a href="/about">About</a>
				<a class="btn" href='https://cdn.example/app-2.1.msi'>MSI</a>
				<a href="https://cdn.example/app-2.1.exe">EXE</a>
			</body></html>`,
			want: "https://cdn.example/app-2.1.msi",
		},
		{
			name:    "path pattern scoped to a single tag",
			html:    `<link href="/theme/skin.exe"><a href="/docs">Docs</a>`,
			wantErr: ErrNoDownloadPathFound,
		},
		{
			name:    "no anchors",
			html:    `<html><body>No downloads here</body></html>`,
			wantErr: ErrNoDownloadPathFound,
		},
		{
			name:     "tag override",
			html:     `<a href="/old.exe">old</a><button data-href="/new/tool-3.0.exe">Get</button>`,
			patterns: Patterns{Tag: `<button[^>]+>`, Path: `data-href="([^"]+)"`},
			want:     "/new/tool-3.0.exe",
		},
		{
			name:     "path override without group returns whole match",
			html:     `<a href="/dl/tool.zip">zip</a>`,
			patterns: Patterns{Path: `/dl/[a-z]+\.zip`},
			want:     "/dl/tool.zip",
		},
		{
			name:     "invalid override",
			html:     `<a href="/x/setup.exe">dl</a>`,
			patterns: Patterns{Path: `href="(?<=x)"`},
			wantErr:  ErrInvalidPattern,
		},
		{
			name:    "extension match is case sensitive",
			html:    `<a href="/x/SETUP.EXE">dl</a>`,
			wantErr: ErrNoDownloadPathFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocateDownloadPath(tt.html, tt.patterns)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LocateDownloadPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPatternsFor(t *testing.T) {
	cfg := model.SoftwareConfig{DownloadLinkPattern: "<button>", DownloadPathPattern: "x(y)"}
	p := PatternsFor(cfg)
	if p.Tag != "<button>" || p.Path != "x(y)" {
		t.Errorf("PatternsFor() = %+v", p)
	}
}
