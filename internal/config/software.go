package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/installer-tracker/internal/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSoftwareList is returned when the software list violates its schema.
var ErrInvalidSoftwareList = errors.New("invalid software list")

// tomlSoftwareList is the TOML layout: one [[software]] table per entry.
type tomlSoftwareList struct {
	Software []model.SoftwareConfig `toml:"software"`
}

// LoadSoftwares reads the software list from path.
//
// The format follows the file extension:
//   - .json: a top-level array (the softwares.json layout)
//   - .yaml, .yml: a top-level sequence
//   - .toml: an array of [[software]] tables
//
// Entries keep their file order. Every entry needs a title, titles must be unique
// and an entry without a special-case resolver needs a download page.
func LoadSoftwares(path string) ([]model.SoftwareConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read software list: %w", err)
	}

	softwares, err := ParseSoftwares(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return softwares, nil
}

// ParseSoftwares decodes a software list in the format named by ext.
func ParseSoftwares(data []byte, ext string) ([]model.SoftwareConfig, error) {
	var softwares []model.SoftwareConfig

	switch strings.ToLower(ext) {
	case ".json", "":
		if err := json.Unmarshal(data, &softwares); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &softwares); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case ".toml":
		var list tomlSoftwareList
		if err := toml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
		softwares = list.Software
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidSoftwareList, ext)
	}

	if err := validateSoftwares(softwares); err != nil {
		return nil, err
	}
	return softwares, nil
}

func validateSoftwares(softwares []model.SoftwareConfig) error {
	seen := make(map[string]struct{}, len(softwares))
	for i, sw := range softwares {
		if strings.TrimSpace(sw.Title) == "" {
			return fmt.Errorf("%w: entry %d has no title", ErrInvalidSoftwareList, i)
		}
		if _, dup := seen[sw.Title]; dup {
			return fmt.Errorf("%w: duplicate title %q", ErrInvalidSoftwareList, sw.Title)
		}
		seen[sw.Title] = struct{}{}
		if sw.DownloadPage == "" && sw.Resolver == "" {
			return fmt.Errorf("%w: %q has no downloadPage", ErrInvalidSoftwareList, sw.Title)
		}
	}
	return nil
}
