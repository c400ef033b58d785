// Package off is the gateway to the OpenFoodFacts product database:
// outbound HTTP calls, upstream status interpretation, and normalization
// of upstream payloads into the internal product summary shape.
package off

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"stockroom-rest-api/pkg/apierror"
)

// SearchFields lists the product fields requested from the search API.
const SearchFields = "code,product_name,brands,product_quantity,quantity"

// Search limit bounds.
const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 20
)

var barcodePattern = regexp.MustCompile(`^[0-9]+$`)

// ValidBarcode reports whether a barcode is composed entirely of digits.
func ValidBarcode(barcode string) bool {
	return barcodePattern.MatchString(barcode)
}

// LookupEnvelope is the response body of a single-product lookup.
// Status 1 means found; anything else means the product does not exist.
type LookupEnvelope struct {
	Status  int        `json:"status"`
	Code    string     `json:"code"`
	Product RawProduct `json:"product"`
}

// SearchEnvelope is the response body of a name search.
type SearchEnvelope struct {
	Count    int          `json:"count"`
	Products []RawProduct `json:"products"`
}

// ClientConfig holds settings for the OpenFoodFacts client.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the OpenFoodFacts HTTP API. Every call is attempted
// exactly once with a fixed timeout; there are no retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new OpenFoodFacts client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
	}
}

// FetchByBarcode looks up a single product by barcode. The barcode is
// validated before any network traffic happens.
func (c *Client) FetchByBarcode(ctx context.Context, barcode string) (*LookupEnvelope, error) {
	if !ValidBarcode(barcode) {
		return nil, apierror.BadRequest("barcode must be digits only")
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/product/%s.json", c.baseURL, barcode))
	if err != nil {
		return nil, err
	}

	var env LookupEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierror.UpstreamUnavailable("upstream returned invalid JSON")
	}

	// Upstream reports "no such product" inside a 200 response.
	if env.Status != 1 {
		return nil, apierror.ProductNotFound("")
	}

	return &env, nil
}

// SearchByName queries the search API. An empty products list is a
// valid result, not an error.
func (c *Client) SearchByName(ctx context.Context, name string, limit int) ([]RawProduct, error) {
	q := url.Values{}
	q.Set("search_terms", name)
	q.Set("page_size", strconv.Itoa(limit))
	q.Set("fields", SearchFields)

	body, err := c.get(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode()))
	if err != nil {
		return nil, err
	}

	var env SearchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierror.UpstreamUnavailable("upstream returned invalid JSON")
	}

	return env.Products, nil
}

// ParseLimit interprets the limit query parameter: missing defaults to
// DefaultSearchLimit, unparsable is an error (not defaulted), and
// anything else clamps to [1, MaxSearchLimit].
func ParseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultSearchLimit, nil
	}

	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apierror.BadRequest("limit must be an integer")
	}
	if limit < 1 {
		return 1, nil
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit, nil
	}
	return limit, nil
}

// get performs one outbound request. Transport failures and non-200
// responses both surface as UpstreamUnavailable.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apierror.UpstreamUnavailable("")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierror.UpstreamUnavailable("")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierror.UpstreamUnavailable("upstream returned non-200")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierror.UpstreamUnavailable("")
	}
	return body, nil
}
