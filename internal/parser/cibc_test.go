package parser

import (
	"strings"
	"testing"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

func cibcExtract(t *testing.T, lines ...string) []models.Transaction {
	t.Helper()
	ext, err := (&CIBCExtractor{}).Extract(strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ext.Transactions
}

func TestCIBCExtract(t *testing.T) {
	txns := cibcExtract(t,
		"CIBC Dividend Visa Infinite Card",
		"Statement Period: March 15 to April 14, 2024",
		"Mar 22 Mar 23 CALG CO-OP GAS BAR #27 CALGARY Transportation 27.22",
		"Apr 2 Apr 3 PAYMENT THANK YOU -500.00",
	)

	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}

	purchase := txns[0]
	if purchase.Date != "2024-03-22" {
		t.Errorf("purchase date: got %q, want 2024-03-22 (posting date discarded)", purchase.Date)
	}
	if purchase.Description != "CALG CO-OP GAS BAR #27 CALGARY" {
		t.Errorf("purchase description: got %q", purchase.Description)
	}
	if purchase.Category != "Transportation" {
		t.Errorf("purchase category: got %q", purchase.Category)
	}
	if purchase.Direction != models.Debit {
		t.Errorf("purchase direction: got %q, want %q", purchase.Direction, models.Debit)
	}
	if purchase.Amount.String() != "27.22" {
		t.Errorf("purchase amount: got %s", purchase.Amount)
	}

	payment := txns[1]
	if payment.Direction != models.Credit {
		t.Errorf("payment direction: got %q, want %q (negative means credit here)", payment.Direction, models.Credit)
	}
	if payment.Amount.String() != "500" {
		t.Errorf("payment amount: got %s, want magnitude 500", payment.Amount)
	}
	if payment.Description != "PAYMENT THANK YOU" {
		t.Errorf("payment description: got %q", payment.Description)
	}
	if payment.Category != "" {
		t.Errorf("payment category: got %q, want empty", payment.Category)
	}
}

func TestCIBCSingleDateLine(t *testing.T) {
	// Not every row carries a posting date; the description must survive
	// untouched when only one leading date is present.
	txns := cibcExtract(t,
		"Statement Period: March 15 to April 14, 2024",
		"Mar 25 NETFLIX.COM 866-7161058 Entertainment 16.99",
	)

	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	got := txns[0]
	if got.Description != "NETFLIX.COM 866-7161058" {
		t.Errorf("description: got %q", got.Description)
	}
	if got.Category != "Entertainment" {
		t.Errorf("category: got %q", got.Category)
	}
}

func TestCIBCPascalTailCategory(t *testing.T) {
	// A trailing mixed-case run outside the known vocabulary is still the
	// spend-category column; upper-case descriptions never look like it.
	txns := cibcExtract(t,
		"Statement Period: March 15 to April 14, 2024",
		"Mar 26 HOME DEPOT #7008 CALGARY Home Improvement 89.99",
	)

	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	got := txns[0]
	if got.Category != "Home Improvement" {
		t.Errorf("category: got %q, want %q", got.Category, "Home Improvement")
	}
	if got.Description != "HOME DEPOT #7008 CALGARY" {
		t.Errorf("description: got %q", got.Description)
	}
}

func TestCIBCSkipsNonTransactionLines(t *testing.T) {
	txns := cibcExtract(t,
		"Statement Period: March 15 to April 14, 2024",
		"Your new charges and credits",
		"Page 1 of 2",
		"Mar 22 Mar 23 STARBUCKS CALGARY Restaurants 6.45",
		"Total for card 6.45",
	)

	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
}
