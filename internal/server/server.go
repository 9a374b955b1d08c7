// Package server implements the JSON API over the provider fetchers.
//
// The API mirrors the CLI surface: provider and country registries,
// cross-provider indicator search, per-provider catalogs and data
// queries, and cache invalidation. All responses are JSON; errors
// carry the machine-readable code alongside the message.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nilebasin/sudandata/pkg/cache"
	"github.com/nilebasin/sudandata/pkg/catalog"
	sderrors "github.com/nilebasin/sudandata/pkg/errors"
	"github.com/nilebasin/sudandata/pkg/httpx"
	"github.com/nilebasin/sudandata/pkg/providers/fao"
	"github.com/nilebasin/sudandata/pkg/providers/ilo"
	"github.com/nilebasin/sudandata/pkg/providers/unhcr"
	"github.com/nilebasin/sudandata/pkg/providers/who"
	"github.com/nilebasin/sudandata/pkg/providers/worldbank"
)

// Server wires the provider clients behind an HTTP handler.
type Server struct {
	logger *log.Logger
	cache  cache.Cache

	worldBank *worldbank.Client
	who       *who.Client
	fao       *fao.Client
	unhcr     *unhcr.Client
	ilo       *ilo.Client
	searcher  *catalog.Searcher
}

// New builds a Server sharing one transport and response cache across
// all provider clients. A nil logger falls back to the default logger.
func New(transport httpx.Transport, c cache.Cache, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	wb := worldbank.NewClient(transport, c, logger)
	whoClient := who.NewClient(transport, c, logger)
	return &Server{
		logger:    logger,
		cache:     c,
		worldBank: wb,
		who:       whoClient,
		fao:       fao.NewClient(transport, c, logger),
		unhcr:     unhcr.NewClient(transport, c, logger),
		ilo:       ilo.NewClient(transport, c, logger),
		searcher:  catalog.NewSearcher(wb, whoClient, logger),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/providers", s.handleProviders)
		r.Get("/countries", s.handleCountries)
		r.Get("/search", s.handleSearch)
		r.Get("/indicators/{provider}", s.handleIndicators)
		r.Get("/data/{provider}", s.handleData)
		r.Delete("/cache", s.handleCacheClear)
	})

	return r
}

// respond writes v as JSON with the given status.
func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// respondError maps an error to a JSON error response. Validation
// codes become 400, missing resources 404, the rest 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := sderrors.GetCode(err)
	switch code {
	case sderrors.ErrCodeInvalidInput, sderrors.ErrCodeInvalidProvider,
		sderrors.ErrCodeInvalidIndicator, sderrors.ErrCodeInvalidCountry,
		sderrors.ErrCodeInvalidYearRange:
		status = http.StatusBadRequest
	case sderrors.ErrCodeNotFound, sderrors.ErrCodeProviderNotFound,
		sderrors.ErrCodeCountryNotFound:
		status = http.StatusNotFound
	}
	if code == "" {
		code = sderrors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = sderrors.UserMessage(err)
	respond(w, status, body)
}
