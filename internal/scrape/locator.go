package scrape

import (
	"fmt"
	"regexp"

	"github.com/handiism/installer-tracker/internal/model"
)

const (
	// DefaultTagPattern matches any anchor-opening tag.
	DefaultTagPattern = `<a[^>]+?>`

	// DefaultPathPattern captures an href value ending in msi or exe.
	DefaultPathPattern = `href=['"]([^'"]+(msi|exe))['"]`
)

var (
	defaultTagRegex  = regexp.MustCompile(DefaultTagPattern)
	defaultPathRegex = regexp.MustCompile(DefaultPathPattern)
)

// Patterns holds the regex sources used to locate a download path.
// Empty fields fall back to DefaultTagPattern and DefaultPathPattern.
type Patterns struct {
	// Tag selects candidate tags in document order.
	Tag string

	// Path is tested against the raw text of each candidate tag.
	Path string
}

// PatternsFor returns the pattern overrides configured for a software entry.
func PatternsFor(cfg model.SoftwareConfig) Patterns {
	return Patterns{
		Tag:  cfg.DownloadLinkPattern,
		Path: cfg.DownloadPathPattern,
	}
}

// LocateDownloadPath finds the first download path in html.
//
// The search runs in two stages:
//  1. Find each tag matching the tag pattern, in document order
//  2. Test the path pattern against that tag's text only
//
// Scoping the path pattern to one tag keeps unrelated attributes elsewhere on the
// page from producing false matches. The first capture group of the first
// matching tag is returned; a path pattern without groups returns the whole match.
//
// Returns an error if:
//   - A pattern override does not compile (wraps ErrInvalidPattern)
//   - No tag yields a path match (wraps ErrNoDownloadPathFound)
//
// Example:
//
//	path, err := LocateDownloadPath(`<a href="/x/setup.exe">dl</a>`, Patterns{})
//	// path == "/x/setup.exe"
func LocateDownloadPath(html string, p Patterns) (string, error) {
	tagRe, pathRe, err := p.compile()
	if err != nil {
		return "", err
	}

	for _, tag := range tagRe.FindAllString(html, -1) {
		match := pathRe.FindStringSubmatch(tag)
		if match == nil {
			continue
		}
		if len(match) > 1 {
			return match[1], nil
		}
		return match[0], nil
	}

	return "", ErrNoDownloadPathFound
}

func (p Patterns) compile() (tagRe, pathRe *regexp.Regexp, err error) {
	tagRe, pathRe = defaultTagRegex, defaultPathRegex

	if p.Tag != "" {
		if tagRe, err = regexp.Compile(p.Tag); err != nil {
			return nil, nil, fmt.Errorf("%w: download link pattern: %v", ErrInvalidPattern, err)
		}
	}
	if p.Path != "" {
		if pathRe, err = regexp.Compile(p.Path); err != nil {
			return nil, nil, fmt.Errorf("%w: download path pattern: %v", ErrInvalidPattern, err)
		}
	}

	return tagRe, pathRe, nil
}
