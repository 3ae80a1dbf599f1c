package special

import (
	"context"
	"regexp"
	"strings"

	"github.com/handiism/installer-tracker/internal/model"
	"github.com/handiism/installer-tracker/internal/scrape"
)

const (
	// FieldWorksTitle is the software title handled by FieldWorks.
	FieldWorksTitle = "FLEx"

	// FieldWorksLandingURL lists every FieldWorks release.
	FieldWorksLandingURL = "https://software.sil.org/fieldworks/download/"
)

// FieldWorks resolves the FieldWorks (FLEx) installer.
//
// The landing page does not link to installers directly. It links to one page
// per release, and the release page carries the installer link:
//
//  1. Fetch LandingURL
//  2. Locate the first release page link (absolute URL under LandingURL, "fw" prefix)
//  3. Fetch the release page
//  4. Locate the installer with the default patterns
type FieldWorks struct {
	fetcher     PageFetcher
	landingURL  string
	pagePattern string
}

// NewFieldWorks creates a FieldWorks resolver for the public SIL site.
func NewFieldWorks(fetcher PageFetcher) *FieldWorks {
	return NewFieldWorksAt(fetcher, FieldWorksLandingURL)
}

// NewFieldWorksAt creates a FieldWorks resolver rooted at landingURL.
// The release page pattern is derived from landingURL, ignoring its scheme.
func NewFieldWorksAt(fetcher PageFetcher, landingURL string) *FieldWorks {
	return &FieldWorks{
		fetcher:     fetcher,
		landingURL:  landingURL,
		pagePattern: `href=['"](https?://` + regexp.QuoteMeta(stripScheme(landingURL)) + `fw[^'"]+)['"]`,
	}
}

// Resolve implements Resolver.
func (f *FieldWorks) Resolve(ctx context.Context, _ model.SoftwareConfig) (string, error) {
	landingHTML, err := f.fetcher.FetchText(ctx, f.landingURL)
	if err != nil {
		return "", err
	}

	releasePage, err := scrape.LocateDownloadPath(landingHTML, scrape.Patterns{Path: f.pagePattern})
	if err != nil {
		return "", err
	}

	releaseHTML, err := f.fetcher.FetchText(ctx, releasePage)
	if err != nil {
		return "", err
	}

	return scrape.LocateDownloadPath(releaseHTML, scrape.Patterns{})
}

func stripScheme(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[i+3:]
	}
	return u
}
