package fao

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

// areaCodes maps ISO3 codes to FAOSTAT numeric area codes.
var areaCodes = map[string]string{
	"SDN": "276",
	"EGY": "59",
	"ETH": "238",
	"TCD": "39",
	"SSD": "277",
	"ERI": "178",
	"LBY": "124",
	"CAF": "37",
}

// AreaCode translates an ISO3 code to the FAOSTAT numeric area code,
// passing unknown codes through unchanged.
func AreaCode(iso3 string) string {
	if code, ok := areaCodes[iso3]; ok {
		return code
	}
	return iso3
}

// Row is one observation from a FAOSTAT dataset.
type Row struct {
	Dataset string   `json:"dataset"`
	Area    string   `json:"area"`
	Item    string   `json:"item"`
	Element string   `json:"element"`
	Year    int32    `json:"year"`
	Value   *float64 `json:"value"`
	Unit    string   `json:"unit,omitempty"`
}

// Client provides access to the FAOSTAT API.
type Client struct {
	*providers.Client
	baseURL string
}

// NewClient creates a FAOSTAT client over the given transport and
// response cache.
func NewClient(transport httpx.Transport, c cache.Cache, logger *log.Logger) *Client {
	return &Client{
		Client:  providers.NewClient(transport, c, logger),
		baseURL: "https://fenixservices.fao.org/faostat/api/v1",
	}
}

// Fetch retrieves observations from a FAOSTAT dataset, keeping only
// rows whose element name contains the given element substring
// (case-insensitive). Per-country failures are logged and skipped.
func (c *Client) Fetch(ctx context.Context, dataset, element string, opts providers.FetchOptions) (*rowset.Cursor[Row], error) {
	if dataset == "" {
		return nil, sderrors.New(sderrors.ErrCodeInvalidInput, "dataset cannot be empty")
	}
	if element == "" {
		return nil, sderrors.New(sderrors.ErrCodeInvalidInput, "element cannot be empty")
	}
	if err := sderrors.ValidateIdentifier(dataset); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Fetch().OnFetchStart(ctx, "fao", dataset)

	var rows []Row
	for _, country := range opts.ResolvedCountries() {
		if err := c.fetchCountry(ctx, dataset, element, country, opts.Years, &rows); err != nil {
			c.Logger().Warn("fao fetch failed", "dataset", dataset, "country", country, "err", err)
		}
	}

	observability.Fetch().OnFetchComplete(ctx, "fao", dataset, len(rows), time.Since(start), nil)
	return rowset.NewCursor(rows), nil
}

func (c *Client) fetchCountry(ctx context.Context, dataset, element, country string, years providers.YearFilter, rows *[]Row) error {
	url := c.baseURL + "/en/data/" + dataset + "?area=" + AreaCode(country) + "&output_type=objects"
	if yearParam := providers.EncodeFAOYears(years); yearParam != "" {
		url += "&" + yearParam
	}

	var resp struct {
		Data []faoDatum `json:"data"`
	}
	if err := c.FetchJSON(ctx, url, &resp); err != nil {
		return err
	}

	elementLower := strings.ToLower(element)
	for _, d := range resp.Data {
		if !strings.Contains(strings.ToLower(d.Element), elementLower) {
			continue
		}
		*rows = append(*rows, Row{
			Dataset: dataset,
			Area:    d.Area,
			Item:    d.Item,
			Element: d.Element,
			Year:    d.Year.year(),
			Value:   d.Value.float(),
			Unit:    d.Unit,
		})
	}
	return nil
}

type faoDatum struct {
	Area    string    `json:"Area"`
	Item    string    `json:"Item"`
	Element string    `json:"Element"`
	Year    flexYear  `json:"Year"`
	Value   flexValue `json:"Value"`
	Unit    string    `json:"Unit"`
}

// flexYear tolerates years published as JSON numbers or strings.
type flexYear struct {
	raw string
}

func (f *flexYear) UnmarshalJSON(data []byte) error {
	f.raw = strings.Trim(string(data), `"`)
	return nil
}

func (f flexYear) year() int32 {
	y, err := strconv.Atoi(f.raw)
	if err != nil {
		return 0
	}
	return int32(y)
}

// flexValue coerces observation values published as numbers or numeric
// strings; anything else stays null.
type flexValue struct {
	val *float64
}

func (f *flexValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.val = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			f.val = &parsed
		}
	}
	return nil
}

func (f flexValue) float() *float64 {
	return f.val
}
