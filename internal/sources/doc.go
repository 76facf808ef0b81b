// Package sources provides the adapters that fetch portfolio content from external
// providers.
//
// Each adapter calls exactly one provider with exactly one HTTP GET per operation, hands
// the body to the schema registry and returns a validated value. Adapters never return
// errors: a TransportError (unreachable provider, non-2xx status) or a ShapeError
// (payload that fails validation) is logged with the source identity and the kind's
// default value is returned instead.
//
// Adapters:
//   - SheetsAdapter: languages, projects, achievements and per-language translation
//     sheets from a spreadsheet-to-JSON endpoint
//   - ContributionsAdapter: contribution calendar for a code-hosting username
//   - ArticlesAdapter: article feed converted from RSS to JSON
package sources
