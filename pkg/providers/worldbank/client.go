package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
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

const perPage = 1000

// Row is one observation from the World Bank API. A nil Value means
// the API published the year with no measurement.
type Row struct {
	IndicatorID   string   `json:"indicator_id"`
	IndicatorName string   `json:"indicator_name"`
	Country       string   `json:"country"`
	CountryName   string   `json:"country_name"`
	Year          int32    `json:"year"`
	Value         *float64 `json:"value"`
}

// Indicator is one catalog entry from the World Bank indicator list.
type Indicator struct {
	ID         string `json:"indicator_id"`
	Name       string `json:"indicator_name"`
	Source     string `json:"source"`
	SourceNote string `json:"source_note,omitempty"`
}

// Client provides access to the World Bank V2 API.
type Client struct {
	*providers.Client
	baseURL string
}

// NewClient creates a World Bank client over the given transport and
// response cache.
func NewClient(transport httpx.Transport, c cache.Cache, logger *log.Logger) *Client {
	return &Client{
		Client:  providers.NewClient(transport, c, logger),
		baseURL: "https://api.worldbank.org/v2",
	}
}

// Fetch retrieves all observations of an indicator for the requested
// countries. Per-country failures are logged and skipped; the cursor
// holds whatever rows were collected.
func (c *Client) Fetch(ctx context.Context, indicator string, opts providers.FetchOptions) (*rowset.Cursor[Row], error) {
	if indicator == "" {
		return nil, sderrors.New(sderrors.ErrCodeInvalidInput, "indicator cannot be empty")
	}
	if err := sderrors.ValidateIdentifier(indicator); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Fetch().OnFetchStart(ctx, "worldbank", indicator)

	var rows []Row
	for _, country := range opts.ResolvedCountries() {
		if err := c.fetchCountry(ctx, indicator, country, opts.Years, &rows); err != nil {
			c.Logger().Warn("worldbank fetch failed", "indicator", indicator, "country", country, "err", err)
		}
	}

	observability.Fetch().OnFetchComplete(ctx, "worldbank", indicator, len(rows), time.Since(start), nil)
	return rowset.NewCursor(rows), nil
}

func (c *Client) fetchCountry(ctx context.Context, indicator, country string, years providers.YearFilter, rows *[]Row) error {
	yearParam := providers.EncodeWorldBankYears(years)

	page := 1
	totalPages := 1
	for page <= totalPages {
		url := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&per_page=%d&page=%d",
			c.baseURL, country, indicator, perPage, page)
		if yearParam != "" {
			url += "&" + yearParam
		}

		var root []json.RawMessage
		if err := c.FetchJSON(ctx, url, &root); err != nil {
			return err
		}
		// The V2 API answers [metadata, data]. Anything else (including
		// the single-element error payload) ends this country's walk.
		if len(root) < 2 {
			return fmt.Errorf("unexpected response shape for %s", indicator)
		}

		var meta struct {
			Pages int `json:"pages"`
		}
		if err := json.Unmarshal(root[0], &meta); err == nil && meta.Pages > 0 {
			totalPages = meta.Pages
		}

		var data []wbDatum
		if err := json.Unmarshal(root[1], &data); err != nil {
			return fmt.Errorf("decode data page %d: %w", page, err)
		}
		for _, d := range data {
			*rows = append(*rows, Row{
				IndicatorID:   d.Indicator.ID,
				IndicatorName: d.Indicator.Value,
				Country:       d.Country.ID,
				CountryName:   d.Country.Value,
				Year:          parseYear(d.Date),
				Value:         d.Value,
			})
		}
		page++
	}
	return nil
}

// Indicators retrieves the full indicator catalog, optionally filtered
// by a case-insensitive substring match on the indicator ID or name.
func (c *Client) Indicators(ctx context.Context, search string) ([]Indicator, error) {
	searchLower := strings.ToLower(search)

	var out []Indicator
	page := 1
	totalPages := 1
	for page <= totalPages {
		url := fmt.Sprintf("%s/indicator?format=json&per_page=%d&page=%d", c.baseURL, perPage, page)

		var root []json.RawMessage
		if err := c.FetchJSON(ctx, url, &root); err != nil {
			return nil, err
		}
		if len(root) < 2 {
			return nil, fmt.Errorf("unexpected indicator catalog shape")
		}

		var meta struct {
			Pages int `json:"pages"`
		}
		if err := json.Unmarshal(root[0], &meta); err == nil && meta.Pages > 0 {
			totalPages = meta.Pages
		}

		var data []wbIndicatorDatum
		if err := json.Unmarshal(root[1], &data); err != nil {
			return nil, fmt.Errorf("decode indicator page %d: %w", page, err)
		}
		for _, d := range data {
			if searchLower != "" &&
				!strings.Contains(strings.ToLower(d.Name), searchLower) &&
				!strings.Contains(strings.ToLower(d.ID), searchLower) {
				continue
			}
			out = append(out, Indicator{
				ID:         d.ID,
				Name:       d.Name,
				Source:     d.Source.Value,
				SourceNote: d.SourceNote,
			})
		}
		page++
	}
	return out, nil
}

func parseYear(date string) int32 {
	y, err := strconv.Atoi(date)
	if err != nil {
		return 0
	}
	return int32(y)
}

type wbDatum struct {
	Indicator struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"indicator"`
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

type wbIndicatorDatum struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Source struct {
		Value string `json:"value"`
	} `json:"source"`
	SourceNote string `json:"sourceNote"`
}
