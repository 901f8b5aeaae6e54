package fetch

import "testing"

func TestParseAmountRange(t *testing.T) {
	tests := []struct {
		input string
		min   float64
		max   float64
	}{
		{"$15,001 - $50,000", 15001, 50000},
		{"$1,001 - $15,000", 1001, 15000},
		{"$250,001 - $500,000", 250001, 500000},
		{"$1,000,000", 1000000, 1000000},
		{"500", 500, 500},
		{"", 0, 0},
		{"Unknown", 0, 0},
		{"$5,000 - garbage", 0, 0},
	}
	for _, tt := range tests {
		gotMin, gotMax := parseAmountRange(tt.input)
		if gotMin != tt.min || gotMax != tt.max {
			t.Errorf("parseAmountRange(%q) = (%.0f, %.0f), want (%.0f, %.0f)",
				tt.input, gotMin, gotMax, tt.min, tt.max)
		}
	}
}

func TestNormalizeTransactionType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Purchase", "purchase"},
		{"purchase", "purchase"},
		{"Buy", "purchase"},
		{"Sale (Full)", "sale"},
		{"Sale (Partial)", "sale"},
		{"Sell", "sale"},
		{"Exchange", "exchange"},
		{"", "purchase"},
		{"something odd", "purchase"},
	}
	for _, tt := range tests {
		if got := normalizeTransactionType(tt.input); got != tt.want {
			t.Errorf("normalizeTransactionType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeDisclosure_Defaults(t *testing.T) {
	tx := normalizeDisclosure(rawDisclosure{Type: "purchase", Amount: "bogus"}, "House")
	if tx.Person != "Unknown" {
		t.Errorf("expected Unknown person, got %q", tx.Person)
	}
	if tx.Ticker != "N/A" {
		t.Errorf("expected N/A ticker, got %q", tx.Ticker)
	}
	if tx.Sector != "Unknown" {
		t.Errorf("expected Unknown sector, got %q", tx.Sector)
	}
	if tx.AmountMin == nil || *tx.AmountMin != 0 || tx.AmountMax == nil || *tx.AmountMax != 0 {
		t.Errorf("unparseable amount should normalize to (0, 0): %v %v", tx.AmountMin, tx.AmountMax)
	}
}

func TestNormalizeDisclosure_SenatorField(t *testing.T) {
	tx := normalizeDisclosure(rawDisclosure{Senator: "John Brown", Type: "Sale (Full)", Amount: "$15,001 - $50,000"}, "Senate")
	if tx.Person != "John Brown" {
		t.Errorf("expected senator name, got %q", tx.Person)
	}
	if tx.Chamber != "Senate" {
		t.Errorf("expected Senate chamber, got %q", tx.Chamber)
	}
	if tx.TransactionType != "sale" {
		t.Errorf("expected sale, got %q", tx.TransactionType)
	}
	if *tx.AmountMin != 15001 || *tx.AmountMax != 50000 {
		t.Errorf("unexpected amounts: %.0f-%.0f", *tx.AmountMin, *tx.AmountMax)
	}
}
