// Package catalog loads the icon catalog and filters it to the eligible set.
//
// The catalog is a JSON document with a top-level "icons" collection:
//
//	{"icons": [{"name": "home-bold", "tags": ["house", "building"]}, ...]}
//
// Only entries whose name ends in the "bold" variant are kept. Load order is
// preserved so that keyword matching over the result is deterministic.
// A missing or malformed resource is reported as core.ErrCatalogUnavailable;
// a well-formed catalog with no eligible entries is an empty, successful load.
package catalog
