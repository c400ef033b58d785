package quantity

import (
	"testing"

	"stockroom-rest-api/pkg/apierror"
)

func TestParseDelta_Valid(t *testing.T) {
	cases := []struct {
		body string
		want int64
	}{
		{`{"delta": 5}`, 5},
		{`{"delta": 0}`, 0},
		{`{"delta": "5"}`, 5},
		{`{"delta": " 12 "}`, 12},
		{`{"delta": 999, "other": "ignored"}`, 999},
	}

	for _, tc := range cases {
		got, err := ParseDelta([]byte(tc.body))
		if err != nil {
			t.Errorf("ParseDelta(%s): unexpected error: %v", tc.body, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDelta(%s) = %d, want %d", tc.body, got, tc.want)
		}
	}
}

func TestParseDelta_Errors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", ``, "JSON body required"},
		{"null body", `null`, "JSON body required"},
		{"invalid JSON", `{not json`, "JSON body required"},
		{"missing delta", `{}`, "delta is required"},
		{"string delta", `{"delta": "abc"}`, "delta must be an integer"},
		{"null delta", `{"delta": null}`, "delta must be an integer"},
		{"fractional delta", `{"delta": 5.7}`, "delta must be an integer"},
		{"object delta", `{"delta": {}}`, "delta must be an integer"},
		{"blank string delta", `{"delta": ""}`, "delta must be an integer"},
		{"negative delta", `{"delta": -1}`, "delta must be non-negative"},
		{"negative string delta", `{"delta": "-3"}`, "delta must be non-negative"},
	}

	for _, tc := range cases {
		_, err := ParseDelta([]byte(tc.body))
		if err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
			continue
		}
		apiErr, ok := err.(*apierror.Error)
		if !ok {
			t.Errorf("%s: expected *apierror.Error, got %T", tc.name, err)
			continue
		}
		if apiErr.StatusCode != 400 {
			t.Errorf("%s: status = %d, want 400", tc.name, apiErr.StatusCode)
		}
		if apiErr.Message != tc.message {
			t.Errorf("%s: message = %q, want %q", tc.name, apiErr.Message, tc.message)
		}
	}
}

func TestRestock(t *testing.T) {
	if got := Restock(10, 5); got != 15 {
		t.Errorf("Restock(10, 5) = %d, want 15", got)
	}
	if got := Restock(0, 0); got != 0 {
		t.Errorf("Restock(0, 0) = %d, want 0", got)
	}
}

func TestDeduct_ClampsAtZero(t *testing.T) {
	cases := []struct {
		q, delta, want int64
	}{
		{10, 4, 6},
		{10, 10, 0},
		{10, 999, 0},
		{0, 1, 0},
		{7, 0, 7},
	}

	for _, tc := range cases {
		if got := Deduct(tc.q, tc.delta); got != tc.want {
			t.Errorf("Deduct(%d, %d) = %d, want %d", tc.q, tc.delta, got, tc.want)
		}
	}
}

func TestRestockThenDeduct_RoundTrips(t *testing.T) {
	for _, start := range []int64{0, 5, 100} {
		for _, delta := range []int64{0, 1, 5} {
			got := Deduct(Restock(start, delta), delta)
			if got != start {
				t.Errorf("Deduct(Restock(%d, %d), %d) = %d, want %d", start, delta, delta, got, start)
			}
		}
	}
}
