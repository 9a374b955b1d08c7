// Package fao provides an HTTP client for the FAOSTAT API.
//
// # Overview
//
// This package fetches agricultural statistics from FAOSTAT datasets
// (e.g. 'QCL' for crops and livestock products). A query names both
// the dataset and the element of interest ('Production', 'Area
// harvested', ...); the element is matched against the response with a
// case-insensitive substring comparison because FAOSTAT element names
// vary across datasets.
//
// # Area Codes
//
// FAOSTAT does not use ISO country codes. The supported ISO3 codes are
// translated to FAOSTAT's numeric area codes before the request; codes
// outside the table are passed through untranslated.
//
// # Values
//
// Observation values arrive as JSON numbers or as numeric strings
// depending on the dataset. Both are coerced to float64; anything else
// yields a null value.
package fao
