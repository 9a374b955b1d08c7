package providers

// CountryInfo describes one supported country. ISO3 is the canonical
// form; every lookup normalizes to it.
type CountryInfo struct {
	ISO3   string `json:"iso3"`    // "SDN"
	ISO2   string `json:"iso2"`    // "SD"
	Name   string `json:"name"`    // "Sudan"
	NameAr string `json:"name_ar"` // Arabic name
}

// DefaultCountry is used when a query supplies no country list.
const DefaultCountry = "SDN"

// countries is the static table of supported countries: Sudan and its
// neighbors. Built once, never mutated.
var countries = []CountryInfo{
	{"SDN", "SD", "Sudan", "السودان"},
	{"EGY", "EG", "Egypt", "مصر"},
	{"ETH", "ET", "Ethiopia", "إثيوبيا"},
	{"TCD", "TD", "Chad", "تشاد"},
	{"SSD", "SS", "South Sudan", "جنوب السودان"},
	{"ERI", "ER", "Eritrea", "إريتريا"},
	{"LBY", "LY", "Libya", "ليبيا"},
	{"CAF", "CF", "Central African Republic", "جمهورية أفريقيا الوسطى"},
}

// Countries returns the supported countries in table order.
// The returned slice is a copy and safe to mutate.
func Countries() []CountryInfo {
	out := make([]CountryInfo, len(countries))
	copy(out, countries)
	return out
}

// FindCountry looks up a country by its ISO3 code.
func FindCountry(iso3 string) (CountryInfo, bool) {
	for _, c := range countries {
		if c.ISO3 == iso3 {
			return c, true
		}
	}
	return CountryInfo{}, false
}

// NormalizeCountryCode maps an ISO2 or ISO3 code to the canonical ISO3
// form. Unknown codes pass through unchanged so that callers can still
// query areas outside the supported table.
func NormalizeCountryCode(code string) string {
	for _, c := range countries {
		if c.ISO3 == code || c.ISO2 == code {
			return c.ISO3
		}
	}
	return code
}

// ValidateCountryCodes reports whether every code is a known ISO2 or
// ISO3 code from the supported table.
func ValidateCountryCodes(codes []string) bool {
	for _, code := range codes {
		found := false
		for _, c := range countries {
			if c.ISO3 == code || c.ISO2 == code {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NormalizeCountries normalizes each code to ISO3 and falls back to
// [DefaultCountry] when the list is empty.
func NormalizeCountries(codes []string) []string {
	if len(codes) == 0 {
		return []string{DefaultCountry}
	}
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = NormalizeCountryCode(code)
	}
	return out
}
