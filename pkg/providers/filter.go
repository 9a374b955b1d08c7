package providers

import (
	"fmt"
	"strings"
)

// YearFilter is an optional inclusive year range pushed down to the
// remote API. A Start or End of zero or below leaves that side
// unbounded. When HasFilter is false no year constraint is sent and
// the encoders return the empty string.
type YearFilter struct {
	HasFilter bool
	Start     int32
	End       int32
}

// YearRange builds a bounded-or-open filter from the given endpoints.
func YearRange(start, end int32) YearFilter {
	return YearFilter{HasFilter: true, Start: start, End: end}
}

// World Bank date ranges must always carry both endpoints, so open
// sides are clamped to years safely outside any published series.
const (
	worldBankMinYear = 1900
	worldBankMaxYear = 2100
)

// EncodeWorldBankYears renders a filter as the World Bank "date"
// query parameter, e.g. "date=2010:2023".
func EncodeWorldBankYears(f YearFilter) string {
	if !f.HasFilter {
		return ""
	}
	start := int32(worldBankMinYear)
	if f.Start > 0 {
		start = f.Start
	}
	end := int32(worldBankMaxYear)
	if f.End > 0 {
		end = f.End
	}
	return fmt.Sprintf("date=%d:%d", start, end)
}

// EncodeWHOYears renders a filter as OData $filter clauses on TimeDim,
// e.g. "TimeDim ge 2010 and TimeDim le 2023". The caller merges the
// result into the request's existing $filter expression.
func EncodeWHOYears(f YearFilter) string {
	if !f.HasFilter {
		return ""
	}
	var parts []string
	if f.Start > 0 {
		parts = append(parts, fmt.Sprintf("TimeDim ge %d", f.Start))
	}
	if f.End > 0 {
		parts = append(parts, fmt.Sprintf("TimeDim le %d", f.End))
	}
	return strings.Join(parts, " and ")
}

// EncodeFAOYears renders a filter as FAOSTAT query parameters,
// e.g. "year_start=2010&year_end=2023".
func EncodeFAOYears(f YearFilter) string {
	if !f.HasFilter {
		return ""
	}
	var parts []string
	if f.Start > 0 {
		parts = append(parts, fmt.Sprintf("year_start=%d", f.Start))
	}
	if f.End > 0 {
		parts = append(parts, fmt.Sprintf("year_end=%d", f.End))
	}
	return strings.Join(parts, "&")
}

// EncodeUNHCRYears renders a filter as UNHCR query parameters,
// e.g. "yearFrom=2010&yearTo=2023".
func EncodeUNHCRYears(f YearFilter) string {
	if !f.HasFilter {
		return ""
	}
	var parts []string
	if f.Start > 0 {
		parts = append(parts, fmt.Sprintf("yearFrom=%d", f.Start))
	}
	if f.End > 0 {
		parts = append(parts, fmt.Sprintf("yearTo=%d", f.End))
	}
	return strings.Join(parts, "&")
}

// EncodeILOYears renders a filter as SDMX period parameters,
// e.g. "startPeriod=2010&endPeriod=2023".
func EncodeILOYears(f YearFilter) string {
	if !f.HasFilter {
		return ""
	}
	var parts []string
	if f.Start > 0 {
		parts = append(parts, fmt.Sprintf("startPeriod=%d", f.Start))
	}
	if f.End > 0 {
		parts = append(parts, fmt.Sprintf("endPeriod=%d", f.End))
	}
	return strings.Join(parts, "&")
}
