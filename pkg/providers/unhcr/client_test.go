package unhcr

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

func TestNormalizePopulationType(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"refugees", "refugees"},
		{"ref", "refugees"},
		{"REF", "refugees"},
		{"idps", "idps"},
		{"idp", "idps"},
		{"asylum_seekers", "asylum-seekers"},
		{"asylum", "asylum-seekers"},
		{"returned_refugees", "returned-refugees"},
		{"returned", "returned-refugees"},
		{"stateless", "stateless"},
		{"oip", "oip"}, // unknown passes through lowercased
	}
	for _, tt := range tests {
		if got := NormalizePopulationType(tt.in); got != tt.want {
			t.Errorf("NormalizePopulationType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchQueriesBothRoles(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		if r.URL.Query().Get("coo") == "SDN" {
			fmt.Fprint(w, `{"items":[
				{"year":2023,"coo":"SDN","coo_name":"Sudan","coa":"TCD","coa_name":"Chad","refugees":409235}
			]}`)
			return
		}
		fmt.Fprint(w, `{"items":[
			{"year":2023,"coo":"SSD","coo_name":"South Sudan","coa":"SDN","coa_name":"Sudan","refugees":305000}
		]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	cursor, err := c.Fetch(context.Background(), "refugees", providers.FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(queries) != 2 {
		t.Fatalf("queries = %v, want coo then coa", queries)
	}
	rows := cursor.All()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want one per role", len(rows))
	}
	if rows[0].CountryOrigin != "SDN" || rows[0].Value != 409235 {
		t.Errorf("origin row = %+v", rows[0])
	}
	if rows[1].CountryAsylum != "SDN" || rows[1].Value != 305000 {
		t.Errorf("asylum row = %+v", rows[1])
	}
}

func TestFetchDropsZeroRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("coo") != "" {
			// Zero-padded filler as origin.
			fmt.Fprint(w, `{"items":[
				{"year":2022,"coo":"SDN","coa":"KEN","refugees":0},
				{"year":2022,"coo":"SDN","coa":"UGA"}
			]}`)
			return
		}
		fmt.Fprint(w, `{"items":[
			{"year":2022,"coo":"ETH","coa":"SDN","refugees":70000}
		]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	cursor, err := c.Fetch(context.Background(), "refugees", providers.FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	rows := cursor.All()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want only the nonzero asylum row", len(rows))
	}
	if rows[0].CountryOrigin != "ETH" || rows[0].Value != 70000 {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestFetchAliasEndpointAndYearFilter(t *testing.T) {
	var paths []string
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		query = r.URL.RawQuery
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.Fetch(context.Background(), "asylum", providers.FetchOptions{
		Years: providers.YearRange(2015, 2020),
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if paths[0] != "/asylum-seekers/" {
		t.Errorf("path = %q, want alias mapped to /asylum-seekers/", paths[0])
	}
	if want := "limit=10000&coa=SDN&yearFrom=2015&yearTo=2020"; query != want {
		t.Errorf("final query = %q, want %q", query, want)
	}
}

func TestFetchValueProbing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("coo") == "" {
			fmt.Fprint(w, `{"items":[]}`)
			return
		}
		// No type-named field, only the "total" fallback, as a float.
		fmt.Fprint(w, `{"items":[
			{"year":2021,"coo":"SDN","coa":"EGY","total":12345.0}
		]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	cursor, err := c.Fetch(context.Background(), "stateless", providers.FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	rows := cursor.All()
	if len(rows) != 1 || rows[0].Value != 12345 {
		t.Errorf("rows = %+v, want total fallback truncated to int64", rows)
	}
	if rows[0].PopulationType != "stateless" {
		t.Errorf("population type = %q, want caller's spelling preserved", rows[0].PopulationType)
	}
}

func TestFetchEmptyType(t *testing.T) {
	c := testClient(t, "http://unused")
	if _, err := c.Fetch(context.Background(), "", providers.FetchOptions{}); err == nil {
		t.Error("expected error for empty population type")
	}
}
