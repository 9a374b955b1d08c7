// Package worldbank provides an HTTP client for the World Bank V2 API.
//
// # Overview
//
// This package fetches indicator time series (e.g. 'SP.POP.TOTL' for
// total population) from https://api.worldbank.org and the indicator
// catalog used for discovery.
//
// # Usage
//
//	client := worldbank.NewClient(transport, responseCache, logger)
//	cursor, err := client.Fetch(ctx, "SP.POP.TOTL", providers.FetchOptions{
//	    Countries: []string{"SDN", "EGY", "SSD"},
//	})
//
// # Pagination
//
// The V2 API returns [metadata, data] pairs with a page count in the
// metadata. Fetch walks every page for every requested country before
// returning the cursor. A page failure stops that country's walk and
// moves on to the next country; partial results are kept.
package worldbank
