// Package unhcr provides an HTTP client for the UNHCR population
// statistics API.
//
// # Overview
//
// This package fetches displacement statistics from
// https://api.unhcr.org/population/v1 for a population type:
// refugees, idps, asylum-seekers, returned-refugees or stateless.
// Short aliases ('ref', 'idp', 'asylum', 'returned') are accepted.
//
// # Dual Roles
//
// Every country is queried twice, once as country of origin (coo) and
// once as country of asylum (coa), so that both outgoing and incoming
// displacement appear in the result.
//
// # Zero Rows
//
// The API pads series with zero-valued rows for year/country pairs
// without data. Those carry no information, so rows whose value is
// zero or absent are dropped.
package unhcr
