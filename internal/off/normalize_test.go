package off

import (
	"encoding/json"
	"testing"
)

func TestNormalizeLookup_NumericQuantityString(t *testing.T) {
	env := &LookupEnvelope{
		Status: 1,
		Code:   "3017620422003",
		Product: RawProduct{
			ProductName:     "Nutella",
			Brands:          "Ferrero",
			ProductQuantity: json.RawMessage(`"400"`),
			Quantity:        "400 g",
		},
	}

	n := NormalizeLookup(env)

	if n.Barcode != "3017620422003" {
		t.Errorf("barcode = %q, want %q", n.Barcode, "3017620422003")
	}
	if n.ProductName != "Nutella" {
		t.Errorf("product_name = %q, want %q", n.ProductName, "Nutella")
	}
	if n.Brand == nil || *n.Brand != "Ferrero" {
		t.Errorf("brand = %v, want Ferrero", n.Brand)
	}
	if n.ProductQuantity != 400 {
		t.Errorf("product_quantity = %d, want 400", n.ProductQuantity)
	}
	if n.ProductQuantityUnit == nil || *n.ProductQuantityUnit != "g" {
		t.Errorf("product_quantity_unit = %v, want g", n.ProductQuantityUnit)
	}
}

func TestNormalizeLookup_NumericQuantityNumber(t *testing.T) {
	env := &LookupEnvelope{
		Status: 1,
		Product: RawProduct{
			Barcode:         "12345",
			ProductName:     "Mock Item",
			Brands:          "BrandX",
			ProductQuantity: json.RawMessage(`10`),
			Quantity:        "10 g",
		},
	}

	n := NormalizeLookup(env)

	if n.Barcode != "12345" {
		t.Errorf("barcode = %q, want %q (fallback to product barcode)", n.Barcode, "12345")
	}
	if n.ProductQuantity != 10 {
		t.Errorf("product_quantity = %d, want 10", n.ProductQuantity)
	}
	if n.Brand == nil || *n.Brand != "BrandX" {
		t.Errorf("brand = %v, want BrandX", n.Brand)
	}
}

func TestNormalizeLookup_NameNotTrimmed(t *testing.T) {
	env := &LookupEnvelope{
		Status:  1,
		Code:    "1",
		Product: RawProduct{ProductName: "  Spread  "},
	}

	if n := NormalizeLookup(env); n.ProductName != "  Spread  " {
		t.Errorf("product_name = %q, single-product lookups must not trim", n.ProductName)
	}
}

func TestNormalizeLookup_NoQuantityAtAll(t *testing.T) {
	env := &LookupEnvelope{
		Status:  1,
		Code:    "1",
		Product: RawProduct{ProductName: "Mystery"},
	}

	n := NormalizeLookup(env)
	if n.ProductQuantity != 0 {
		t.Errorf("product_quantity = %d, want 0", n.ProductQuantity)
	}
	if n.ProductQuantityUnit != nil {
		t.Errorf("product_quantity_unit = %v, want nil", n.ProductQuantityUnit)
	}
	if n.Brand != nil {
		t.Errorf("brand = %v, want nil", n.Brand)
	}
}

func TestNormalizeSearchProduct_FreeTextQuantity(t *testing.T) {
	n := NormalizeSearchProduct(RawProduct{
		Code:        "222",
		ProductName: "Choco Bar",
		Brands:      "BrandB, Other",
		Quantity:    "50 g",
	})

	if n.Barcode != "222" {
		t.Errorf("barcode = %q, want 222", n.Barcode)
	}
	if n.Brand == nil || *n.Brand != "BrandB" {
		t.Errorf("brand = %v, want BrandB (first comma entry)", n.Brand)
	}
	if n.ProductQuantity != 50 {
		t.Errorf("product_quantity = %d, want 50", n.ProductQuantity)
	}
	if n.ProductQuantityUnit == nil || *n.ProductQuantityUnit != "g" {
		t.Errorf("product_quantity_unit = %v, want g", n.ProductQuantityUnit)
	}
}

func TestNormalizeSearchProduct_NumericFieldWins(t *testing.T) {
	n := NormalizeSearchProduct(RawProduct{
		Code:            "111",
		ProductName:     " Choco Spread ",
		Brands:          "BrandA",
		ProductQuantity: json.RawMessage(`"400"`),
		Quantity:        "400 g",
	})

	if n.ProductName != "Choco Spread" {
		t.Errorf("product_name = %q, search results must trim", n.ProductName)
	}
	if n.ProductQuantity != 400 {
		t.Errorf("product_quantity = %d, want 400", n.ProductQuantity)
	}
	if n.ProductQuantityUnit == nil || *n.ProductQuantityUnit != "g" {
		t.Errorf("product_quantity_unit = %v, want g", n.ProductQuantityUnit)
	}
}

func TestNormalizeSearchProduct_BarcodeFallsBackToID(t *testing.T) {
	n := NormalizeSearchProduct(RawProduct{ID: "internal-9", ProductName: "X"})
	if n.Barcode != "internal-9" {
		t.Errorf("barcode = %q, want fallback to _id", n.Barcode)
	}
}

func TestTrailingUnit(t *testing.T) {
	cases := []struct {
		text string
		want string // "" means nil
	}{
		{"400 g", "g"},
		{"net wt 400", "net"},
		{"1L", "l"},
		{"", ""},
		{"400", ""},
	}

	for _, tc := range cases {
		got := trailingUnit(tc.text)
		if tc.want == "" {
			if got != nil {
				t.Errorf("trailingUnit(%q) = %q, want nil", tc.text, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Errorf("trailingUnit(%q) = %v, want %q", tc.text, got, tc.want)
		}
	}
}

func TestLeadingQuantity(t *testing.T) {
	cases := []struct {
		text     string
		wantQty  int64
		wantUnit string // "" means nil
	}{
		{"400 g", 400, "g"},
		{"  50g", 50, "g"},
		{"12 X 330 ML", 12, "x"},
		{"400", 400, ""},
		{"about 400 g", 0, ""},
		{"", 0, ""},
	}

	for _, tc := range cases {
		qty, unit := leadingQuantity(tc.text)
		if qty != tc.wantQty {
			t.Errorf("leadingQuantity(%q) qty = %d, want %d", tc.text, qty, tc.wantQty)
		}
		if tc.wantUnit == "" {
			if unit != nil {
				t.Errorf("leadingQuantity(%q) unit = %q, want nil", tc.text, *unit)
			}
			continue
		}
		if unit == nil || *unit != tc.wantUnit {
			t.Errorf("leadingQuantity(%q) unit = %v, want %q", tc.text, unit, tc.wantUnit)
		}
	}
}

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{`400`, 400, true},
		{`"400"`, 400, true},
		{`" 7 "`, 7, true},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"400 g"`, 0, false},
		{``, 0, false},
	}

	for _, tc := range cases {
		var raw json.RawMessage
		if tc.raw != "" {
			raw = json.RawMessage(tc.raw)
		}
		got, ok := coerceQuantity(raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("coerceQuantity(%s) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
