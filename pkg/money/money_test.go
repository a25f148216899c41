package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Currency
// ---------------------------------------------------------------------------

func TestNewCurrency_Valid(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP", "CAD"} {
		c, err := NewCurrency(code)
		if err != nil {
			t.Errorf("NewCurrency(%q) unexpected error: %v", code, err)
		}
		if c.Code() != code {
			t.Errorf("NewCurrency(%q).Code() = %q, want %q", code, c.Code(), code)
		}
	}
}

func TestNewCurrency_Invalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"lowercase", "usd"},
		{"too short", "US"},
		{"too long", "USDD"},
		{"digits", "US1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCurrency(tt.code); err == nil {
				t.Errorf("NewCurrency(%q) expected error, got nil", tt.code)
			}
		})
	}
}

func TestMustCurrency_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCurrency(\"bad\") did not panic")
		}
	}()
	MustCurrency("bad")
}

func TestCurrency_Symbol(t *testing.T) {
	tests := map[string]string{"USD": "$", "EUR": "€", "GBP": "£", "JPY": "JPY "}
	for code, want := range tests {
		if got := MustCurrency(code).Symbol(); got != want {
			t.Errorf("Symbol(%q) = %q, want %q", code, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

func TestAdd(t *testing.T) {
	a := USDAmount(decimal.NewFromInt(100))
	b := USDAmount(decimal.RequireFromString("0.50"))

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add unexpected error: %v", err)
	}
	if sum.String() != "100.50 USD" {
		t.Errorf("Add = %s, want 100.50 USD", sum)
	}
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	a := USDAmount(decimal.NewFromInt(1))
	b := New(decimal.NewFromInt(1), MustCurrency("EUR"))
	if _, err := a.Add(b); err == nil {
		t.Error("Add with mismatched currencies expected error, got nil")
	}
}

func TestEqual(t *testing.T) {
	a := USDAmount(decimal.RequireFromString("10.0"))
	b := USDAmount(decimal.NewFromInt(10))
	if !a.Equal(b) {
		t.Error("10.0 USD should equal 10 USD")
	}
	if a.Equal(New(decimal.NewFromInt(10), MustCurrency("CAD"))) {
		t.Error("USD should not equal CAD")
	}
}

// ---------------------------------------------------------------------------
// Formatting
// ---------------------------------------------------------------------------

func TestFormatWhole(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0"},
		{"439.0772", "$439"},
		{"439.5", "$440"},
		{"999.5", "$1,000"},
		{"31345", "$31,345"},
		{"1234567.49", "$1,234,567"},
		{"-2500.7", "-$2,501"},
		{"-0.2", "$0"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := USDAmount(decimal.RequireFromString(tt.amount)).FormatWhole()
			if got != tt.want {
				t.Errorf("FormatWhole(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"439.0772", "$439.08"},
		{"12000", "$12,000.00"},
		{"-15.004", "-$15.00"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := USDAmount(decimal.RequireFromString(tt.amount)).FormatCents()
			if got != tt.want {
				t.Errorf("FormatCents(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
