// Package quantity holds the pure rules for quantity adjustments:
// how a delta payload is validated and how it is applied.
package quantity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"stockroom-rest-api/pkg/apierror"
)

// ParseDelta validates a restock/deduct request body and returns the
// non-negative delta. Restock and deduct share this verbatim; only the
// arithmetic direction differs between them.
func ParseDelta(body []byte) (int64, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return 0, apierror.BadRequest("JSON body required")
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, apierror.BadRequest("JSON body required")
	}

	raw, ok := payload["delta"]
	if !ok {
		return 0, apierror.BadRequest("delta is required")
	}

	delta, ok := coerceDelta(raw)
	if !ok {
		return 0, apierror.BadRequest("delta must be an integer")
	}
	if delta < 0 {
		return 0, apierror.BadRequest("delta must be non-negative")
	}

	return delta, nil
}

// coerceDelta accepts a JSON number or a numeric string ("5" -> 5).
// Blank strings, null, fractional numbers and everything else fail.
func coerceDelta(raw json.RawMessage) (int64, bool) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Restock returns the quantity increased by delta.
func Restock(q, delta int64) int64 {
	return q + delta
}

// Deduct returns the quantity decreased by delta, clamped at zero.
// Deducting more than is on hand is not an error.
func Deduct(q, delta int64) int64 {
	if next := q - delta; next > 0 {
		return next
	}
	return 0
}
