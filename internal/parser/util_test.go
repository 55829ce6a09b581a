package parser

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"45.67", "45.67", false},
		{"-58.86", "-58.86", false},
		{"$1,250.00", "1250", false},
		{"-$1,234.56", "-1234.56", false},
		{" 221.33 ", "221.33", false},
		{"", "0", false},
		{"-", "0", false},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("got %s, want %s", got.String(), tt.expected)
			}
		})
	}
}

func TestFirstAndLastAmount(t *testing.T) {
	line := "Loan interest NO.78783249 001 221.33 -58.86"

	first, ok := firstAmount(line)
	if !ok {
		t.Fatal("expected a first amount")
	}
	if first.String() != "221.33" {
		t.Errorf("first amount: got %s, want 221.33", first)
	}

	last, ok := lastAmount(line)
	if !ok {
		t.Fatal("expected a last amount")
	}
	if last.String() != "-58.86" {
		t.Errorf("last amount: got %s, want -58.86", last)
	}

	if _, ok := firstAmount("no money here"); ok {
		t.Error("expected no amount on a money-free line")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   DateFormat
		expected string
	}{
		{"slash MDY", "01/15/2024", DateSlashMDY, "2024-01-15"},
		{"slash MDY short", "01/15/24", DateSlashMDYShort, "2024-01-15"},
		{"iso passthrough", "2024-01-15", DateISO, "2024-01-15"},
		{"auto slash", "01/15/2024", DateAuto, "2024-01-15"},
		{"auto iso", "2024-03-22", DateAuto, "2024-03-22"},
		{"unparseable kept raw", "not a date", DateAuto, "not a date"},
		{"wrong shape kept raw", "15 Jan", DateSlashMDY, "15 Jan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDate(tt.input, tt.format); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		marker   string
		amount   string
		expected models.Direction
	}{
		{"DR marker wins", "INTEREST EARNED 5.00", "DR", "5.00", models.Debit},
		{"CR marker wins", "SERVICE CHARGE 3.95", "CR", "3.95", models.Credit},
		{"debit keyword", "POS PURCHASE SUPERSTORE 45.67", "", "45.67", models.Debit},
		{"credit keyword", "PAYROLL DEPOSIT 1250.00", "", "1250.00", models.Credit},
		{"keyword beats sign", "MONTHLY FEE -3.95", "", "-3.95", models.Debit},
		{"negative sign", "XFER 100232 -100.00", "", "-100.00", models.Debit},
		{"positive default", "XFER 100232 100.00", "", "100.00", models.Credit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("bad amount literal: %v", err)
			}
			if got := resolveDirection(tt.line, tt.marker, amount); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := collapseSpaces("  E-TRANSFER   sent\t to  "); got != "E-TRANSFER sent to" {
		t.Errorf("got %q", got)
	}
}
