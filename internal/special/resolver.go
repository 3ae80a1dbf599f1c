package special

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/handiism/installer-tracker/internal/model"
)

// ErrUnknownSpecialCase is returned when a software entry is routed to a
// special-case strategy that is not registered.
var ErrUnknownSpecialCase = errors.New("unknown special case")

// PageFetcher fetches a page body as text.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Resolver finds the installer URL for a title whose download page cannot be
// matched with the generic link patterns.
type Resolver interface {
	Resolve(ctx context.Context, cfg model.SoftwareConfig) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, cfg model.SoftwareConfig) (string, error)

// Resolve calls f(ctx, cfg).
func (f ResolverFunc) Resolve(ctx context.Context, cfg model.SoftwareConfig) (string, error) {
	return f(ctx, cfg)
}

// Registry maps strategy names to resolvers. It is populated at startup and only
// read while a run is in progress.
type Registry struct {
	resolvers map[string]Resolver
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

// DefaultRegistry returns a Registry with every built-in strategy registered.
//
// Built-in strategies:
//   - "FLEx": FieldWorks two-hop landing page chain
func DefaultRegistry(fetcher PageFetcher) *Registry {
	r := NewRegistry()
	r.Register(FieldWorksTitle, NewFieldWorks(fetcher))
	return r
}

// Register adds or replaces the resolver for name.
func (r *Registry) Register(name string, resolver Resolver) {
	r.resolvers[name] = resolver
}

// Names returns the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resolvers))
	for name := range r.resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For reports which strategy handles cfg.
//
// An explicit cfg.Resolver always routes to special-case handling, even when no
// such strategy exists (Resolve then fails with ErrUnknownSpecialCase). Otherwise
// the title is looked up; titles without a strategy use the generic locator.
func (r *Registry) For(cfg model.SoftwareConfig) (name string, ok bool) {
	if cfg.Resolver != "" {
		return cfg.Resolver, true
	}
	if _, found := r.resolvers[cfg.Title]; found {
		return cfg.Title, true
	}
	return "", false
}

// Resolve runs the strategy registered under name.
//
// Returns an error wrapping ErrUnknownSpecialCase if name is not registered.
// Errors from the strategy itself are returned unchanged.
func (r *Registry) Resolve(ctx context.Context, name string, cfg model.SoftwareConfig) (string, error) {
	resolver, ok := r.resolvers[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (title %q)", ErrUnknownSpecialCase, name, cfg.Title)
	}
	return resolver.Resolve(ctx, cfg)
}
