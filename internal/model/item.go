package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Item represents a single stock-keeping record.
type Item struct {
	ID              int64  `json:"id"`
	ProductName     string `json:"product_name"`
	Barcode         string `json:"barcode"`
	ProductQuantity int64  `json:"product_quantity"`
	PriceCents      int64  `json:"price_cents"`
}

// CreateItemRequest is the payload for creating an item. Quantity and
// price accept numbers or numeric strings and default to 0 when absent
// or blank.
type CreateItemRequest struct {
	ProductName     string  `json:"product_name"`
	Barcode         string  `json:"barcode"`
	ProductQuantity FlexInt `json:"product_quantity"`
	PriceCents      FlexInt `json:"price_cents"`
}

// ItemPatch is a partial update. The field set doubles as the update
// whitelist: keys outside it are dropped during decoding, and price_cents
// is deliberately not part of it.
type ItemPatch struct {
	ProductName     *string  `json:"product_name"`
	Barcode         *string  `json:"barcode"`
	ProductQuantity *FlexInt `json:"product_quantity"`
}

// FlexInt is an integer that tolerates the loose inputs clients send:
// a JSON number, a numeric string ("5"), an empty string, or null.
// Blank and null decode to 0. Non-integer values are an error.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid string value: %s", s)
		}
		unquoted = strings.TrimSpace(unquoted)
		if unquoted == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(unquoted, 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer: %q", unquoted)
		}
		*f = FlexInt(n)
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %s", s)
	}
	*f = FlexInt(n)
	return nil
}
