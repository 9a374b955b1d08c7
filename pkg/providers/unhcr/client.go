package unhcr

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nilebasin/sudandata/pkg/cache"
	sderrors "github.com/nilebasin/sudandata/pkg/errors"
	"github.com/nilebasin/sudandata/pkg/httpx"
	"github.com/nilebasin/sudandata/pkg/observability"
	"github.com/nilebasin/sudandata/pkg/providers"
	"github.com/nilebasin/sudandata/pkg/rowset"
)

const pageLimit = 10000

// Row is one displacement statistic. Value is the population count
// for the requested type.
type Row struct {
	Year              int32  `json:"year"`
	PopulationType    string `json:"population_type"`
	CountryOrigin     string `json:"country_origin"`
	CountryOriginName string `json:"country_origin_name"`
	CountryAsylum     string `json:"country_asylum"`
	CountryAsylumName string `json:"country_asylum_name"`
	Value             int64  `json:"value"`
}

// NormalizePopulationType maps a population type or one of its
// aliases to the API's endpoint path segment. Unknown types pass
// through lowercased so the API can reject them.
func NormalizePopulationType(popType string) string {
	switch strings.ToLower(popType) {
	case "refugees", "ref":
		return "refugees"
	case "idps", "idp":
		return "idps"
	case "asylum_seekers", "asylum":
		return "asylum-seekers"
	case "returned_refugees", "returned":
		return "returned-refugees"
	case "stateless":
		return "stateless"
	default:
		return strings.ToLower(popType)
	}
}

// Client provides access to the UNHCR population statistics API.
type Client struct {
	*providers.Client
	baseURL string
}

// NewClient creates a UNHCR client over the given transport and
// response cache.
func NewClient(transport httpx.Transport, c cache.Cache, logger *log.Logger) *Client {
	return &Client{
		Client:  providers.NewClient(transport, c, logger),
		baseURL: "https://api.unhcr.org/population/v1",
	}
}

// Fetch retrieves displacement statistics for the requested countries,
// querying each both as origin and as asylum country. Individual
// query failures are logged and skipped.
func (c *Client) Fetch(ctx context.Context, popType string, opts providers.FetchOptions) (*rowset.Cursor[Row], error) {
	if popType == "" {
		return nil, sderrors.New(sderrors.ErrCodeInvalidInput,
			"population type cannot be empty; valid types: refugees, idps, asylum_seekers, returned_refugees, stateless")
	}
	if err := sderrors.ValidateIdentifier(popType); err != nil {
		return nil, err
	}

	endpoint := NormalizePopulationType(popType)

	start := time.Now()
	observability.Fetch().OnFetchStart(ctx, "unhcr", endpoint)

	var rows []Row
	for _, country := range opts.ResolvedCountries() {
		for _, role := range []string{"coo", "coa"} {
			if err := c.fetchRole(ctx, endpoint, popType, role, country, opts.Years, &rows); err != nil {
				c.Logger().Warn("unhcr fetch failed",
					"type", endpoint, "country", country, "role", role, "err", err)
			}
		}
	}

	observability.Fetch().OnFetchComplete(ctx, "unhcr", endpoint, len(rows), time.Since(start), nil)
	return rowset.NewCursor(rows), nil
}

func (c *Client) fetchRole(ctx context.Context, endpoint, popType, role, country string, years providers.YearFilter, rows *[]Row) error {
	url := c.baseURL + "/" + endpoint + "/?limit=" + strconv.Itoa(pageLimit) + "&" + role + "=" + country
	if yearParam := providers.EncodeUNHCRYears(years); yearParam != "" {
		url += "&" + yearParam
	}

	var resp struct {
		Items []unhcrItem `json:"items"`
	}
	if err := c.FetchJSON(ctx, url, &resp); err != nil {
		return err
	}

	for _, item := range resp.Items {
		value, ok := item.value()
		// Zero-padded filler rows carry no information.
		if !ok || value == 0 {
			continue
		}
		*rows = append(*rows, Row{
			Year:              item.Year,
			PopulationType:    popType,
			CountryOrigin:     item.Coo,
			CountryOriginName: item.CooName,
			CountryAsylum:     item.Coa,
			CountryAsylumName: item.CoaName,
			Value:             value,
		})
	}
	return nil
}

// valueFields is the probe order for the population count. The API
// names the count after the population type; "total" is the fallback.
var valueFields = []string{"refugees", "idps", "asylum_seekers", "returned_refugees", "stateless", "total"}

type unhcrItem struct {
	Year    int32  `json:"year"`
	Coo     string `json:"coo"`
	CooName string `json:"coo_name"`
	Coa     string `json:"coa"`
	CoaName string `json:"coa_name"`

	fields map[string]json.RawMessage
}

func (i *unhcrItem) UnmarshalJSON(data []byte) error {
	type alias unhcrItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*i = unhcrItem(a)
	return json.Unmarshal(data, &i.fields)
}

// value probes the known count fields in order and returns the first
// one present, truncating floats the way the API occasionally
// publishes them.
func (i *unhcrItem) value() (int64, bool) {
	for _, field := range valueFields {
		raw, present := i.fields[field]
		if !present {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}
