package catalog

import (
	"context"

	"github.com/charmbracelet/log"

	sderrors "github.com/nilebasin/sudandata/pkg/errors"
	"github.com/nilebasin/sudandata/pkg/providers/who"
	"github.com/nilebasin/sudandata/pkg/providers/worldbank"
)

// Result is one indicator match tagged with its provider.
type Result struct {
	Provider      string `json:"provider"`
	IndicatorID   string `json:"indicator_id"`
	IndicatorName string `json:"indicator_name"`
}

// Searcher queries the World Bank and WHO indicator catalogs.
type Searcher struct {
	worldBank *worldbank.Client
	who       *who.Client
	logger    *log.Logger
}

// NewSearcher builds a Searcher over the two catalog-bearing
// providers. A nil logger falls back to the default logger.
func NewSearcher(wb *worldbank.Client, whoClient *who.Client, logger *log.Logger) *Searcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Searcher{worldBank: wb, who: whoClient, logger: logger}
}

// Search returns indicators whose ID or name contains the query
// (case-insensitive), World Bank matches first. A provider failure
// drops that provider's matches, not the whole search.
func (s *Searcher) Search(ctx context.Context, query string) ([]Result, error) {
	if query == "" {
		return nil, sderrors.New(sderrors.ErrCodeInvalidInput, "search query cannot be empty")
	}

	var results []Result

	wbIndicators, err := s.worldBank.Indicators(ctx, query)
	if err != nil {
		s.logger.Warn("worldbank catalog search failed", "query", query, "err", err)
	}
	for _, ind := range wbIndicators {
		results = append(results, Result{
			Provider:      "worldbank",
			IndicatorID:   ind.ID,
			IndicatorName: ind.Name,
		})
	}

	whoIndicators, err := s.who.Indicators(ctx, query)
	if err != nil {
		s.logger.Warn("who catalog search failed", "query", query, "err", err)
	}
	for _, ind := range whoIndicators {
		results = append(results, Result{
			Provider:      "who",
			IndicatorID:   ind.Code,
			IndicatorName: ind.Name,
		})
	}

	return results, nil
}
