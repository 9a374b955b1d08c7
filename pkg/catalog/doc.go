// Package catalog implements cross-provider indicator discovery.
//
// Only the World Bank and WHO publish searchable indicator catalogs;
// FAOSTAT, UNHCR and ILO queries are keyed by dataset, population
// type and dataflow instead. Search merges the two catalogs into one
// result list tagged with the owning provider.
package catalog
