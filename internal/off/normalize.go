package off

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// RawProduct is a product object as returned by OpenFoodFacts, either
// nested inside a lookup envelope or as an element of search results.
// product_quantity arrives as a number or a numeric string depending on
// the product, so it is decoded lazily.
type RawProduct struct {
	ID              string          `json:"_id"`
	Code            string          `json:"code"`
	Barcode         string          `json:"barcode"`
	ProductName     string          `json:"product_name"`
	Brands          string          `json:"brands"`
	ProductQuantity json.RawMessage `json:"product_quantity"`
	Quantity        string          `json:"quantity"`
}

// NormalizedProduct is the internal summary shape produced from an
// upstream payload. It either prefills a new item or is returned
// directly as a search result.
type NormalizedProduct struct {
	Barcode             string  `json:"barcode"`
	ProductName         string  `json:"product_name"`
	Brand               *string `json:"brand"`
	ProductQuantity     int64   `json:"product_quantity"`
	ProductQuantityUnit *string `json:"product_quantity_unit"`
}

// NormalizeLookup maps a single-product lookup envelope into the
// internal shape. The product name is passed through untrimmed; search
// results trim it. That asymmetry is intentional.
func NormalizeLookup(env *LookupEnvelope) NormalizedProduct {
	p := env.Product

	barcode := env.Code
	if barcode == "" {
		barcode = p.Code
	}
	if barcode == "" {
		barcode = p.Barcode
	}

	n := NormalizedProduct{
		Barcode:     barcode,
		ProductName: p.ProductName,
		Brand:       firstBrand(p.Brands),
	}
	n.ProductQuantity, n.ProductQuantityUnit = extractQuantity(p)
	return n
}

// NormalizeSearchProduct maps one element of a search-results list into
// the internal shape. Search results carry fields at the top level and
// may omit the code, in which case the upstream document id stands in.
func NormalizeSearchProduct(p RawProduct) NormalizedProduct {
	barcode := p.Code
	if barcode == "" {
		barcode = p.Barcode
	}
	if barcode == "" {
		barcode = p.ID
	}

	n := NormalizedProduct{
		Barcode:     barcode,
		ProductName: strings.TrimSpace(p.ProductName),
		Brand:       firstBrand(p.Brands),
	}
	n.ProductQuantity, n.ProductQuantityUnit = extractQuantity(p)
	return n
}

// extractQuantity applies the dual extraction policy: when the numeric
// product_quantity field is usable, the free-text quantity only
// contributes a unit; otherwise the free text is parsed from its start
// for both the quantity and the unit.
func extractQuantity(p RawProduct) (int64, *string) {
	if qty, ok := coerceQuantity(p.ProductQuantity); ok {
		return qty, trailingUnit(p.Quantity)
	}
	return leadingQuantity(p.Quantity)
}

var (
	alphaRun      = regexp.MustCompile(`[A-Za-z]+`)
	leadingQtyRun = regexp.MustCompile(`^\s*([0-9]+)\s*([A-Za-z]+)?`)
)

// trailingUnit finds the first run of alphabetic characters anywhere in
// the free-text quantity, e.g. "400 g" -> "g". Nil if there is none.
func trailingUnit(text string) *string {
	m := alphaRun.FindString(text)
	if m == "" {
		return nil
	}
	unit := strings.ToLower(m)
	return &unit
}

// leadingQuantity parses the free-text quantity anchored at its start:
// the leading digit run is the quantity and an immediately following
// alphabetic run is the unit, both lower-cased. Without leading digits
// the quantity defaults to 0 and the unit is nil.
func leadingQuantity(text string) (int64, *string) {
	m := leadingQtyRun.FindStringSubmatch(text)
	if m == nil {
		return 0, nil
	}

	qty, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, nil
	}

	var unit *string
	if m[2] != "" {
		u := strings.ToLower(m[2])
		unit = &u
	}
	return qty, unit
}

// coerceQuantity interprets the product_quantity field, which upstream
// sends as a number, a numeric string, blank, or not at all.
func coerceQuantity(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		return int64(v), true
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// firstBrand takes the first entry of a comma-separated brands field,
// trimmed. Nil when the field is blank or absent.
func firstBrand(brands string) *string {
	if strings.TrimSpace(brands) == "" {
		return nil
	}
	first := strings.TrimSpace(strings.Split(brands, ",")[0])
	if first == "" {
		return nil
	}
	return &first
}
