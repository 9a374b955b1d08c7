package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/nilebasin/sudandata/pkg/cache"
	"github.com/nilebasin/sudandata/pkg/httpx"
	"github.com/nilebasin/sudandata/pkg/providers/who"
	"github.com/nilebasin/sudandata/pkg/providers/worldbank"
)

// fakeTransport answers the two catalog endpoints by host.
func fakeTransport(wbStatus int) httpx.TransportFunc {
	return func(ctx context.Context, rawURL string) (*httpx.Response, error) {
		switch {
		case strings.Contains(rawURL, "worldbank.org"):
			if wbStatus != 200 {
				return &httpx.Response{StatusCode: wbStatus}, nil
			}
			return &httpx.Response{StatusCode: 200, Body: []byte(`[{"pages":1},[
				{"id":"SH.STA.MMRT","name":"Maternal mortality ratio","source":{"value":"WDI"}}
			]]`)}, nil
		case strings.Contains(rawURL, "ghoapi"):
			return &httpx.Response{StatusCode: 200, Body: []byte(`{"value":[
				{"IndicatorCode":"MDG_0000000026","IndicatorName":"Maternal mortality ratio","Language":"EN"}
			]}`)}, nil
		default:
			return &httpx.Response{StatusCode: 404}, nil
		}
	}
}

func newSearcher(transport httpx.Transport) *Searcher {
	c := cache.NewNull()
	return NewSearcher(
		worldbank.NewClient(transport, c, nil),
		who.NewClient(transport, c, nil),
		nil,
	)
}

func TestSearchMergesProviders(t *testing.T) {
	s := newSearcher(fakeTransport(200))

	results, err := s.Search(context.Background(), "maternal mortality")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want one per provider", results)
	}
	if results[0].Provider != "worldbank" || results[0].IndicatorID != "SH.STA.MMRT" {
		t.Errorf("result 0 = %+v, want worldbank first", results[0])
	}
	if results[1].Provider != "who" || results[1].IndicatorID != "MDG_0000000026" {
		t.Errorf("result 1 = %+v", results[1])
	}
}

func TestSearchProviderFailureNonFatal(t *testing.T) {
	s := newSearcher(fakeTransport(500))

	results, err := s.Search(context.Background(), "maternal")
	if err != nil {
		t.Fatalf("Search should survive one provider failing: %v", err)
	}
	if len(results) != 1 || results[0].Provider != "who" {
		t.Errorf("results = %+v, want WHO matches only", results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	s := newSearcher(fakeTransport(200))
	if _, err := s.Search(context.Background(), ""); err == nil {
		t.Error("expected error for empty query")
	}
}
