package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMerge(t *testing.T) {
	flag := "boom"
	prev := DownloadState{
		SoftwareConfig: SoftwareConfig{Title: "App", DownloadPage: "https://old.example/"},
		LocalPath:      "public/downloads/app-1.0.exe",
		Version:        "1.0",
		ErrorFlag:      &flag,
	}
	cfg := SoftwareConfig{Title: "App", DownloadPage: "https://new.example/", DownloadPathPattern: `href="(.+)"`}

	got := Merge(prev, cfg)

	if got.DownloadPage != "https://new.example/" {
		t.Errorf("DownloadPage = %q, want config value", got.DownloadPage)
	}
	if got.DownloadPathPattern != cfg.DownloadPathPattern {
		t.Errorf("DownloadPathPattern = %q, want %q", got.DownloadPathPattern, cfg.DownloadPathPattern)
	}
	if got.LocalPath != prev.LocalPath || got.Version != prev.Version {
		t.Errorf("state fields not carried over: %+v", got)
	}
	if got.ErrorFlag == nil || *got.ErrorFlag != "boom" {
		t.Fatalf("ErrorFlag = %v, want boom", got.ErrorFlag)
	}
	if got.ErrorFlag == prev.ErrorFlag {
		t.Error("ErrorFlag pointer is shared with previous record")
	}
}

func TestMerge_NewTitle(t *testing.T) {
	got := Merge(DownloadState{}, SoftwareConfig{Title: "New", DownloadPage: "https://x/"})
	if got.Title != "New" || got.LocalPath != "" || got.Version != "" || got.ErrorFlag != nil {
		t.Errorf("unexpected record for new title: %+v", got)
	}
}

func TestDownloadState_SetError(t *testing.T) {
	var d DownloadState
	d.SetError(errors.New("no version number found"))
	if !d.Failed() || *d.ErrorFlag != "no version number found" {
		t.Fatalf("SetError did not record message: %+v", d)
	}
	d.SetError(nil)
	if d.Failed() {
		t.Error("SetError(nil) should clear the flag")
	}
}

func TestDownloadState_JSONLayout(t *testing.T) {
	d := DownloadState{
		SoftwareConfig: SoftwareConfig{Title: "App", DownloadPage: "https://x/"},
		LocalPath:      "public/downloads/app.exe",
		Version:        "1.2.3",
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"title":"App"`, `"downloadPage":"https://x/"`, `"localPath":"public/downloads/app.exe"`, `"version":"1.2.3"`, `"errorFlag":null`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}
	if strings.Contains(s, "downloadLinkPattern") {
		t.Errorf("empty pattern should be omitted: %s", s)
	}
}

func TestState_Clone(t *testing.T) {
	flag := "x"
	s := State{"App": {SoftwareConfig: SoftwareConfig{Title: "App"}, Version: "1.0", ErrorFlag: &flag}}
	c := s.Clone()

	d := c["App"]
	d.Version = "2.0"
	*d.ErrorFlag = "changed"
	c["App"] = d

	if s["App"].Version != "1.0" || *s["App"].ErrorFlag != "x" {
		t.Errorf("clone aliases original: %+v", s["App"])
	}
}
