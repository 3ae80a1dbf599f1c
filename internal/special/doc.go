// Package special holds per-title resolution strategies for download pages
// that the generic link locator cannot handle.
//
// Strategies are registered by name in a Registry at startup. A software entry
// is routed to a strategy by its explicit "resolver" field or, failing that,
// by its title:
//
//	reg := special.DefaultRegistry(fetcher)
//	if name, ok := reg.For(cfg); ok {
//	    url, err := reg.Resolve(ctx, name, cfg)
//	    ...
//	}
//
// Routing to a name that is not registered fails with ErrUnknownSpecialCase.
package special
