// Package providers provides the shared infrastructure for the open-data
// API fetchers.
//
// # Overview
//
// Each supported data source has its own subpackage holding the URL
// templates, pagination strategy and JSON decoder for that source:
//
//   - [worldbank]: World Bank World Development Indicators (paginated REST)
//   - [who]: WHO Global Health Observatory (OData)
//   - [fao]: FAOSTAT agricultural statistics (numeric area codes)
//   - [unhcr]: UNHCR population statistics (origin and asylum roles)
//   - [ilo]: ILOSTAT labour statistics (SDMX-JSON)
//
// # Client Pattern
//
// All provider clients follow a consistent pattern:
//
//	client := worldbank.NewClient(transport, responseCache, logger)
//	cursor, err := client.Fetch(ctx, "SP.POP.TOTL", providers.FetchOptions{
//	    Countries: []string{"SDN", "EGY"},
//	    Years:     providers.YearRange(2010, 2023),
//	})
//
// Fetching is eager and sequential: all pages for all requested countries
// are buffered before the cursor is returned. Failures of individual
// country or page fetches are non-fatal and contribute zero rows; only
// invalid caller input fails a query.
//
// # Shared Infrastructure
//
// This package holds the pieces every fetcher shares: the [Client] base
// (cache read-through GET), the static provider and country registries,
// and the per-provider year-range filter encoders.
//
// [worldbank]: github.com/nilebasin/sudandata/pkg/providers/worldbank
// [who]: github.com/nilebasin/sudandata/pkg/providers/who
// [fao]: github.com/nilebasin/sudandata/pkg/providers/fao
// [unhcr]: github.com/nilebasin/sudandata/pkg/providers/unhcr
// [ilo]: github.com/nilebasin/sudandata/pkg/providers/ilo
package providers
