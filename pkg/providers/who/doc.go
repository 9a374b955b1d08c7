// Package who provides an HTTP client for the WHO Global Health
// Observatory (GHO) OData API.
//
// # Overview
//
// This package fetches health indicator time series (e.g.
// 'WHOSIS_000001' for life expectancy at birth) from
// https://ghoapi.azureedge.net and the indicator catalog used for
// discovery.
//
// # Filtering
//
// Country and year constraints are pushed down as a single OData
// $filter expression:
//
//	$filter=SpatialDim eq 'SDN' and TimeDim ge 2015
//
// The data endpoint does not include indicator names; Row.IndicatorName
// stays empty and the catalog endpoint is the place to resolve names.
package who
