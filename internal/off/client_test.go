package off

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockroom-rest-api/pkg/apierror"
)

func newTestClient(upstream *httptest.Server) *Client {
	return NewClient(ClientConfig{
		BaseURL:   upstream.URL,
		Timeout:   2 * time.Second,
		UserAgent: "stockroom-test/1.0",
	})
}

func TestFetchByBarcode_Success(t *testing.T) {
	var gotPath, gotAgent string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"status": 1, "code": "3017620422003", "product": {"product_name": "Nutella"}}`))
	}))
	defer upstream.Close()

	env, err := newTestClient(upstream).FetchByBarcode(context.Background(), "3017620422003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/product/3017620422003.json" {
		t.Errorf("path = %q, want /product/3017620422003.json", gotPath)
	}
	if gotAgent != "stockroom-test/1.0" {
		t.Errorf("User-Agent = %q, want stockroom-test/1.0", gotAgent)
	}
	if env.Code != "3017620422003" || env.Product.ProductName != "Nutella" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestFetchByBarcode_RejectsNonDigitsBeforeCalling(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	_, err := newTestClient(upstream).FetchByBarcode(context.Background(), "abc123")
	apiErr, ok := err.(*apierror.Error)
	if !ok || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
	if calls != 0 {
		t.Errorf("upstream was called %d times, want 0", calls)
	}
}

func TestFetchByBarcode_UpstreamSaysNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found", "code": "000"}`))
	}))
	defer upstream.Close()

	_, err := newTestClient(upstream).FetchByBarcode(context.Background(), "000")
	apiErr, ok := err.(*apierror.Error)
	if !ok || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 error, got %v", err)
	}
	if apiErr.Code != "PRODUCT_NOT_FOUND" {
		t.Errorf("code = %q, want PRODUCT_NOT_FOUND", apiErr.Code)
	}
}

func TestFetchByBarcode_Non200IsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	_, err := newTestClient(upstream).FetchByBarcode(context.Background(), "123")
	apiErr, ok := err.(*apierror.Error)
	if !ok || apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 error, got %v", err)
	}
}

func TestFetchByBarcode_TransportFailureIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(upstream)
	upstream.Close() // connection refused from here on

	_, err := client.FetchByBarcode(context.Background(), "123")
	apiErr, ok := err.(*apierror.Error)
	if !ok || apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 error, got %v", err)
	}
}

func TestSearchByName_PassesQueryAndFields(t *testing.T) {
	var gotQuery map[string][]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"count": 1, "products": [{"code": "111", "product_name": "Choco"}]}`))
	}))
	defer upstream.Close()

	products, err := newTestClient(upstream).SearchByName(context.Background(), "choco", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(products) != 1 || products[0].Code != "111" {
		t.Errorf("unexpected products: %+v", products)
	}
	if got := gotQuery["search_terms"]; len(got) != 1 || got[0] != "choco" {
		t.Errorf("search_terms = %v, want [choco]", got)
	}
	if got := gotQuery["page_size"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("page_size = %v, want [2]", got)
	}
	if got := gotQuery["fields"]; len(got) != 1 || got[0] != SearchFields {
		t.Errorf("fields = %v, want [%s]", got, SearchFields)
	}
}

func TestSearchByName_EmptyResultIsSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "products": []}`))
	}))
	defer upstream.Close()

	products, err := newTestClient(upstream).SearchByName(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected no products, got %+v", products)
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", DefaultSearchLimit, false},
		{"7", 7, false},
		{"0", 1, false},
		{"-3", 1, false},
		{"20", 20, false},
		{"21", 20, false},
		{"500", 20, false},
		{"abc", 0, true},
		{"2.5", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseLimit(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseLimit(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLimit(%q): unexpected error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLimit(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestValidBarcode(t *testing.T) {
	valid := []string{"0", "3017620422003"}
	invalid := []string{"", "abc123", "12 34", "12-34", "١٢٣"}

	for _, b := range valid {
		if !ValidBarcode(b) {
			t.Errorf("ValidBarcode(%q) = false, want true", b)
		}
	}
	for _, b := range invalid {
		if ValidBarcode(b) {
			t.Errorf("ValidBarcode(%q) = true, want false", b)
		}
	}
}
