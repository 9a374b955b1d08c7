package ilo

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

// keySuffixes are the wildcarded dimension tails tried in order.
var keySuffixes = []string{".", "..", "...", "....", "....."}

// Row is one labour statistic observation. Classif1 holds the AGE
// dimension when present, otherwise CLASSIF1.
type Row struct {
	Indicator string  `json:"indicator"`
	Country   string  `json:"country"`
	Sex       string  `json:"sex,omitempty"`
	Classif1  string  `json:"classif1,omitempty"`
	Year      int32   `json:"year"`
	Value     float64 `json:"value"`
}

// Client provides access to the ILOSTAT SDMX REST API.
type Client struct {
	*providers.Client
	baseURL string
}

// NewClient creates an ILO client over the given transport and
// response cache.
func NewClient(transport httpx.Transport, c cache.Cache, logger *log.Logger) *Client {
	return &Client{
		Client:  providers.NewClient(transport, c, logger),
		baseURL: "https://sdmx.ilo.org/rest",
	}
}

// Fetch retrieves observations of a dataflow for the requested
// countries. Per-country failures, including exhausting every key
// length, contribute zero rows.
func (c *Client) Fetch(ctx context.Context, indicator string, opts providers.FetchOptions) (*rowset.Cursor[Row], error) {
	if indicator == "" {
		return nil, sderrors.New(sderrors.ErrCodeInvalidInput, "indicator cannot be empty")
	}
	if err := sderrors.ValidateIdentifier(indicator); err != nil {
		return nil, err
	}

	dataflow := indicator
	if !strings.HasPrefix(dataflow, "DF_") {
		dataflow = "DF_" + dataflow
	}

	start := time.Now()
	observability.Fetch().OnFetchStart(ctx, "ilo", dataflow)

	var rows []Row
	for _, country := range opts.ResolvedCountries() {
		body, err := c.probe(ctx, dataflow, country, opts.Years)
		if err != nil {
			c.Logger().Warn("ilo fetch failed", "dataflow", dataflow, "country", country, "err", err)
			continue
		}
		if err := decodeRows(body, indicator, country, &rows); err != nil {
			c.Logger().Warn("ilo decode failed", "dataflow", dataflow, "country", country, "err", err)
		}
	}

	observability.Fetch().OnFetchComplete(ctx, "ilo", dataflow, len(rows), time.Since(start), nil)
	return rowset.NewCursor(rows), nil
}

// probe tries each wildcarded key length until one returns a
// non-empty body.
func (c *Client) probe(ctx context.Context, dataflow, country string, years providers.YearFilter) ([]byte, error) {
	base := c.baseURL + "/data/ILO," + dataflow + "/" + country + ".A"
	query := "?format=jsondata&detail=dataonly&lastNObservations=20"
	if yearParam := providers.EncodeILOYears(years); yearParam != "" {
		query += "&" + yearParam
	}

	var lastErr error
	for _, suffix := range keySuffixes {
		body, err := c.FetchBody(ctx, base+suffix+query)
		if err != nil {
			lastErr = err
			continue
		}
		if len(body) > 0 {
			return body, nil
		}
	}
	if lastErr == nil {
		lastErr = sderrors.New(sderrors.ErrCodeNotFound, "no data for any key length")
	}
	return nil, lastErr
}

func decodeRows(body []byte, indicator, country string, rows *[]Row) error {
	var env sdmxEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}

	dataSets := env.DataSets
	structure := env.Structure
	// SDMX-JSON 2.0 nests everything under "data".
	if len(dataSets) == 0 && env.Data != nil {
		dataSets = env.Data.DataSets
	}
	if structure == nil && env.Data != nil && len(env.Data.Structures) > 0 {
		structure = &env.Data.Structures[0]
	}
	if len(dataSets) == 0 || structure == nil {
		return nil
	}

	seriesDims := structure.Dimensions.Series
	obsDims := structure.Dimensions.Observation

	for key, series := range dataSets[0].Series {
		indices := parseKeyIndices(key)
		sex := lookupDim(seriesDims, "SEX", indices)
		classif1 := lookupDim(seriesDims, "AGE", indices)
		if classif1 == "" {
			classif1 = lookupDim(seriesDims, "CLASSIF1", indices)
		}

		for obsKey, obs := range series.Observations {
			value, ok := obsValue(obs)
			if !ok {
				continue
			}
			timeStr := lookupDim(obsDims, "TIME_PERIOD", parseKeyIndices(obsKey))
			year, _ := strconv.Atoi(timeStr)
			*rows = append(*rows, Row{
				Indicator: indicator,
				Country:   country,
				Sex:       sex,
				Classif1:  classif1,
				Year:      int32(year),
				Value:     value,
			})
		}
	}
	return nil
}

// parseKeyIndices splits a colon-separated SDMX key into indices.
// Unparseable segments become 0.
func parseKeyIndices(key string) []int {
	parts := strings.Split(key, ":")
	indices := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			n = 0
		}
		indices[i] = n
	}
	return indices
}

// lookupDim resolves one dimension of a parsed key against the
// structure's value lists. Dimension position must match index
// position.
func lookupDim(dims []sdmxDimension, id string, indices []int) string {
	for i := 0; i < len(dims) && i < len(indices); i++ {
		if dims[i].ID == id && indices[i] >= 0 && indices[i] < len(dims[i].Values) {
			return dims[i].Values[indices[i]].label()
		}
	}
	return ""
}

// obsValue extracts the numeric value from an observation array
// [value, flags...].
func obsValue(obs []json.RawMessage) (float64, bool) {
	if len(obs) == 0 {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(obs[0], &v); err != nil {
		return 0, false
	}
	return v, true
}

type sdmxEnvelope struct {
	DataSets  []sdmxDataSet  `json:"dataSets"`
	Structure *sdmxStructure `json:"structure"`
	Data      *struct {
		DataSets   []sdmxDataSet   `json:"dataSets"`
		Structures []sdmxStructure `json:"structures"`
	} `json:"data"`
}

type sdmxDataSet struct {
	Series map[string]sdmxSeries `json:"series"`
}

type sdmxSeries struct {
	Observations map[string][]json.RawMessage `json:"observations"`
}

type sdmxStructure struct {
	Dimensions struct {
		Series      []sdmxDimension `json:"series"`
		Observation []sdmxDimension `json:"observation"`
	} `json:"dimensions"`
}

type sdmxDimension struct {
	ID     string         `json:"id"`
	Values []sdmxDimValue `json:"values"`
}

type sdmxDimValue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (v sdmxDimValue) label() string {
	if v.ID != "" {
		return v.ID
	}
	return v.Name
}
