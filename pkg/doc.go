// Package pkg provides the core libraries for querying open data about
// Sudan and its neighbors.
//
// # Overview
//
// The pkg directory is organized into a few areas:
//
//  1. [providers] - Per-source API clients (World Bank, WHO, FAO, UNHCR, ILO)
//  2. [catalog] - Cross-provider indicator search
//  3. [cache], [httpx], [rowset] - Infrastructure (response cache, HTTP transport, cursors)
//  4. [errors], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
// The typical data flow:
//
//	CLI / JSON API
//	         ↓
//	    [providers/*] client (build URL, decode provider payload)
//	         ↓
//	    [httpx] transport + [cache] response cache
//	         ↓
//	    [rowset] cursor of typed rows
//
// Each provider client embeds the shared providers.Client, which handles
// caching, status checks and JSON decoding; the subpackages only know
// their source's URL shapes and wire formats.
package pkg
