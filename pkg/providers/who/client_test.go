package who

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nilebasin/sudandata/pkg/cache"
	"github.com/nilebasin/sudandata/pkg/httpx"
	"github.com/nilebasin/sudandata/pkg/providers"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		Client:  providers.NewClient(httpx.NewClient(httpx.DefaultSettings()), cache.NewNull(), nil),
		baseURL: serverURL,
	}
}

func TestFetchFilterExpression(t *testing.T) {
	var gotFilter string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("$filter")
		fmt.Fprint(w, `{"value":[]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.Fetch(context.Background(), "WHOSIS_000001", providers.FetchOptions{
		Years: providers.YearRange(2015, 2023),
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := "SpatialDim eq 'SDN' and TimeDim ge 2015 and TimeDim le 2023"
	if gotFilter != want {
		t.Errorf("$filter = %q, want %q", gotFilter, want)
	}
}

func TestFetchRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"value":[
			{"IndicatorCode":"WHOSIS_000001","SpatialDim":"SDN","TimeDim":2019,
			 "Dim1":"BTSX","NumericValue":65.3,"ParentLocation":"Eastern Mediterranean"},
			{"IndicatorCode":"WHOSIS_000001","SpatialDim":"SDN","TimeDim":"2020",
			 "Dim1":"MLE","NumericValue":null}
		]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	cursor, err := c.Fetch(context.Background(), "WHOSIS_000001", providers.FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	rows := cursor.All()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Year != 2019 || rows[0].Value == nil || *rows[0].Value != 65.3 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].Sex != "BTSX" || rows[0].Region != "Eastern Mediterranean" {
		t.Errorf("row 0 dims = %+v", rows[0])
	}
	if rows[1].Year != 2020 {
		t.Errorf("string TimeDim should parse, got year %d", rows[1].Year)
	}
	if rows[1].Value != nil {
		t.Errorf("row 1 value = %v, want nil preserved", rows[1].Value)
	}
}

func TestFetchCountryFailureNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("$filter") == "SpatialDim eq 'SSD'" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"value":[{"SpatialDim":"SDN","TimeDim":2019,"NumericValue":1}]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	cursor, err := c.Fetch(context.Background(), "WHOSIS_000001", providers.FetchOptions{
		Countries: []string{"SDN", "SSD"},
	})
	if err != nil {
		t.Fatalf("Fetch should tolerate one failing country: %v", err)
	}
	if cursor.Len() != 1 {
		t.Errorf("rows = %d, want 1", cursor.Len())
	}
}

func TestFetchEmptyIndicator(t *testing.T) {
	c := testClient(t, "http://unused")
	if _, err := c.Fetch(context.Background(), "", providers.FetchOptions{}); err == nil {
		t.Error("expected error for empty indicator")
	}
}

func TestIndicatorsSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Indicator" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"value":[
			{"IndicatorCode":"WHOSIS_000001","IndicatorName":"Life expectancy at birth (years)","Language":"EN"},
			{"IndicatorCode":"MDG_0000000001","IndicatorName":"Infant mortality rate","Language":"EN"}
		]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	all, err := c.Indicators(context.Background(), "")
	if err != nil {
		t.Fatalf("Indicators: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered = %d, want 2", len(all))
	}

	mort, err := c.Indicators(context.Background(), "mortality")
	if err != nil {
		t.Fatalf("Indicators(mortality): %v", err)
	}
	if len(mort) != 1 || mort[0].Code != "MDG_0000000001" {
		t.Errorf("filtered = %+v", mort)
	}
}
