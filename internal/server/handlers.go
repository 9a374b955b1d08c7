package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	sderrors "github.com/nilebasin/sudandata/pkg/errors"
	"github.com/nilebasin/sudandata/pkg/providers"
)

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"providers": providers.Providers(),
	})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"countries": providers.Countries(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results, err := s.searcher.Search(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	search := r.URL.Query().Get("search")

	var (
		indicators any
		err        error
	)
	switch provider {
	case "worldbank":
		indicators, err = s.worldBank.Indicators(r.Context(), search)
	case "who":
		indicators, err = s.who.Indicators(r.Context(), search)
	default:
		respondError(w, sderrors.New(sderrors.ErrCodeInvalidProvider,
			"provider %q has no indicator catalog; use worldbank or who", provider))
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"provider":   provider,
		"indicators": indicators,
	})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	q := r.URL.Query()

	opts, err := fetchOptions(q.Get("countries"), q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, err)
		return
	}

	indicator := q.Get("indicator")

	var rows any
	var count int
	switch provider {
	case "worldbank":
		cursor, err := s.worldBank.Fetch(r.Context(), indicator, opts)
		if err != nil {
			respondError(w, err)
			return
		}
		rows, count = cursor.All(), cursor.Len()
	case "who":
		cursor, err := s.who.Fetch(r.Context(), indicator, opts)
		if err != nil {
			respondError(w, err)
			return
		}
		rows, count = cursor.All(), cursor.Len()
	case "fao":
		cursor, err := s.fao.Fetch(r.Context(), indicator, q.Get("element"), opts)
		if err != nil {
			respondError(w, err)
			return
		}
		rows, count = cursor.All(), cursor.Len()
	case "unhcr":
		cursor, err := s.unhcr.Fetch(r.Context(), indicator, opts)
		if err != nil {
			respondError(w, err)
			return
		}
		rows, count = cursor.All(), cursor.Len()
	case "ilo":
		cursor, err := s.ilo.Fetch(r.Context(), indicator, opts)
		if err != nil {
			respondError(w, err)
			return
		}
		rows, count = cursor.All(), cursor.Len()
	default:
		respondError(w, sderrors.New(sderrors.ErrCodeProviderNotFound,
			"unknown provider %q", provider))
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"provider": provider,
		"count":    count,
		"rows":     rows,
	})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.cache.Clear()
	respond(w, http.StatusOK, map[string]any{"cleared": true})
}

// fetchOptions parses the shared query parameters of data endpoints.
func fetchOptions(countries, from, to string) (providers.FetchOptions, error) {
	var opts providers.FetchOptions

	if countries != "" {
		for _, code := range strings.Split(countries, ",") {
			code = strings.TrimSpace(code)
			if code != "" {
				opts.Countries = append(opts.Countries, code)
			}
		}
	}

	if from == "" && to == "" {
		return opts, nil
	}
	start, err := parseYearParam(from)
	if err != nil {
		return opts, err
	}
	end, err := parseYearParam(to)
	if err != nil {
		return opts, err
	}
	if start > 0 && end > 0 && start > end {
		return opts, sderrors.New(sderrors.ErrCodeInvalidYearRange,
			"from year %d is after to year %d", start, end)
	}
	opts.Years = providers.YearRange(start, end)
	return opts, nil
}

func parseYearParam(v string) (int32, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, sderrors.New(sderrors.ErrCodeInvalidYearRange, "invalid year %q", v)
	}
	return int32(n), nil
}
