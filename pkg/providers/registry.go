package providers

// Provider describes one supported data source.
type Provider struct {
	ID          string `json:"id"`          // "worldbank", "who", "fao", "unhcr", "ilo"
	Name        string `json:"name"`        // "World Bank"
	NameAr      string `json:"name_ar"`     // Arabic name
	Description string `json:"description"` // one-line description
	BaseURL     string `json:"base_url"`    // API root
	// CountryParam is how this API spells the default country: ISO3
	// for most, a numeric area code for FAOSTAT.
	CountryParam string `json:"country_param"`
}

// registry is the static provider table. Built once, never mutated.
var registry = []Provider{
	{
		ID:           "worldbank",
		Name:         "World Bank",
		NameAr:       "البنك الدولي",
		Description:  "World Development Indicators and other World Bank datasets",
		BaseURL:      "https://api.worldbank.org/v2/",
		CountryParam: "SDN",
	},
	{
		ID:           "who",
		Name:         "World Health Organization",
		NameAr:       "منظمة الصحة العالمية",
		Description:  "Global Health Observatory (GHO) data",
		BaseURL:      "https://ghoapi.azureedge.net/api/",
		CountryParam: "SDN",
	},
	{
		ID:           "fao",
		Name:         "Food and Agriculture Organization",
		NameAr:       "منظمة الأغذية والزراعة",
		Description:  "FAOSTAT agricultural statistics",
		BaseURL:      "https://fenixservices.fao.org/faostat/api/v1/",
		CountryParam: "276",
	},
	{
		ID:           "unhcr",
		Name:         "UNHCR",
		NameAr:       "المفوضية السامية",
		Description:  "UN Refugee Agency displacement and population data",
		BaseURL:      "https://api.unhcr.org/population/v1/",
		CountryParam: "SDN",
	},
	{
		ID:           "ilo",
		Name:         "International Labour Organization",
		NameAr:       "منظمة العمل الدولية",
		Description:  "International Labour Organization statistics",
		BaseURL:      "https://www.ilo.org/ilostat/api/v1/",
		CountryParam: "SDN",
	},
}

// Providers returns the supported data sources in registration order.
// The returned slice is a copy and safe to mutate.
func Providers() []Provider {
	out := make([]Provider, len(registry))
	copy(out, registry)
	return out
}

// FindProvider looks up a provider by its ID.
func FindProvider(id string) (Provider, bool) {
	for _, p := range registry {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}
