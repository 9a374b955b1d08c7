package who

import (
	"context"
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

// Row is one observation from the GHO data API. Sex comes from the
// Dim1 dimension and Region from ParentLocation; both may be empty.
type Row struct {
	IndicatorCode string   `json:"indicator_code"`
	IndicatorName string   `json:"indicator_name,omitempty"`
	Country       string   `json:"country"`
	Year          int32    `json:"year"`
	Sex           string   `json:"sex,omitempty"`
	Value         *float64 `json:"value"`
	Region        string   `json:"region,omitempty"`
}

// Indicator is one catalog entry from the GHO Indicator endpoint.
type Indicator struct {
	Code     string `json:"indicator_code"`
	Name     string `json:"indicator_name"`
	Language string `json:"language,omitempty"`
}

// Client provides access to the WHO GHO OData API.
type Client struct {
	*providers.Client
	baseURL string
}

// NewClient creates a WHO client over the given transport and
// response cache.
func NewClient(transport httpx.Transport, c cache.Cache, logger *log.Logger) *Client {
	return &Client{
		Client:  providers.NewClient(transport, c, logger),
		baseURL: "https://ghoapi.azureedge.net/api",
	}
}

// Fetch retrieves all observations of an indicator for the requested
// countries. Per-country failures are logged and skipped.
func (c *Client) Fetch(ctx context.Context, indicator string, opts providers.FetchOptions) (*rowset.Cursor[Row], error) {
	if indicator == "" {
		return nil, sderrors.New(sderrors.ErrCodeInvalidInput, "indicator cannot be empty")
	}
	if err := sderrors.ValidateIdentifier(indicator); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Fetch().OnFetchStart(ctx, "who", indicator)

	var rows []Row
	for _, country := range opts.ResolvedCountries() {
		if err := c.fetchCountry(ctx, indicator, country, opts.Years, &rows); err != nil {
			c.Logger().Warn("who fetch failed", "indicator", indicator, "country", country, "err", err)
		}
	}

	observability.Fetch().OnFetchComplete(ctx, "who", indicator, len(rows), time.Since(start), nil)
	return rowset.NewCursor(rows), nil
}

func (c *Client) fetchCountry(ctx context.Context, indicator, country string, years providers.YearFilter, rows *[]Row) error {
	filter := "SpatialDim eq '" + country + "'"
	if yearClause := providers.EncodeWHOYears(years); yearClause != "" {
		filter += " and " + yearClause
	}
	// OData endpoints expect %20 for spaces, not the form-encoding plus.
	url := c.baseURL + "/" + indicator + "?$filter=" +
		strings.ReplaceAll(providers.URLEncode(filter), "+", "%20")

	var resp struct {
		Value []ghoDatum `json:"value"`
	}
	if err := c.FetchJSON(ctx, url, &resp); err != nil {
		return err
	}

	for _, d := range resp.Value {
		row := Row{
			IndicatorCode: indicator,
			Country:       country,
			Year:          d.TimeDim.year(),
			Sex:           d.Dim1,
			Value:         d.NumericValue,
			Region:        d.ParentLocation,
		}
		if d.IndicatorCode != "" {
			row.IndicatorCode = d.IndicatorCode
		}
		if d.SpatialDim != "" {
			row.Country = d.SpatialDim
		}
		*rows = append(*rows, row)
	}
	return nil
}

// Indicators retrieves the GHO indicator catalog, optionally filtered
// by a case-insensitive substring match on the code or name.
func (c *Client) Indicators(ctx context.Context, search string) ([]Indicator, error) {
	var resp struct {
		Value []struct {
			IndicatorCode string `json:"IndicatorCode"`
			IndicatorName string `json:"IndicatorName"`
			Language      string `json:"Language"`
		} `json:"value"`
	}
	if err := c.FetchJSON(ctx, c.baseURL+"/Indicator", &resp); err != nil {
		return nil, err
	}

	searchLower := strings.ToLower(search)
	var out []Indicator
	for _, d := range resp.Value {
		if searchLower != "" &&
			!strings.Contains(strings.ToLower(d.IndicatorName), searchLower) &&
			!strings.Contains(strings.ToLower(d.IndicatorCode), searchLower) {
			continue
		}
		out = append(out, Indicator{
			Code:     d.IndicatorCode,
			Name:     d.IndicatorName,
			Language: d.Language,
		})
	}
	return out, nil
}

type ghoDatum struct {
	IndicatorCode  string   `json:"IndicatorCode"`
	SpatialDim     string   `json:"SpatialDim"`
	TimeDim        flexYear `json:"TimeDim"`
	Dim1           string   `json:"Dim1"`
	NumericValue   *float64 `json:"NumericValue"`
	ParentLocation string   `json:"ParentLocation"`
}

// flexYear tolerates the GHO API publishing TimeDim as either a JSON
// number or a string.
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
