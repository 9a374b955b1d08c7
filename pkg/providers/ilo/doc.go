// Package ilo provides an HTTP client for the ILOSTAT SDMX REST API.
//
// # Overview
//
// This package fetches labour statistics (e.g. 'UNE_DEAP_SEX_AGE_RT'
// for the unemployment rate) from https://sdmx.ilo.org. Dataflow IDs
// carry a DF_ prefix in the catalog; the prefix is added when missing.
//
// # Key Probing
//
// SDMX data keys list every dimension, and the number of dimensions
// varies per indicator. The key starts with the reference area and
// the annual frequency marker, then wildcards the rest with dots:
//
//	/data/ILO,DF_UNE_DEAP_SEX_AGE_RT/SDN.A...
//
// Since the dimension count is unknown up front, one to five
// wildcarded positions are tried in order and the first non-empty
// 200 response wins.
//
// # SDMX-JSON Schemas
//
// Responses arrive in SDMX-JSON 1.0 (dataSets and structure at the
// root) or 2.0 (both nested under data). Both are handled. Series
// and observation keys are colon-separated indices into the
// structure's dimension value lists; observations without a numeric
// value are dropped.
package ilo
