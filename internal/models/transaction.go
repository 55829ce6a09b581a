package models

import "github.com/shopspring/decimal"

// Direction says which way the money moved.
type Direction string

const (
	Debit  Direction = "DEBIT"  // money out
	Credit Direction = "CREDIT" // money in
)

// Transaction is one extracted statement transaction. Amount is always a
// non-negative magnitude; Direction carries the sign.
type Transaction struct {
	Date             string           `json:"date"` // YYYY-MM-DD, or the raw date text when normalization failed
	Description      string           `json:"description"`
	Amount           decimal.Decimal  `json:"amount"`
	Direction        Direction        `json:"direction"`
	Category         string           `json:"category,omitempty"` // spend category, CIBC card statements only
	OriginalDateText string           `json:"originalDate,omitempty"`
	RawLine          string           `json:"rawLine,omitempty"`
	Balance          *decimal.Decimal `json:"balance,omitempty"` // running balance, when the layout has a balance column
}

// BankKind selects an extraction strategy.
type BankKind string

const (
	BankTD         BankKind = "td"
	BankRBC        BankKind = "rbc"
	BankCIBC       BankKind = "cibc"
	BankBMO        BankKind = "bmo"
	BankScotiabank BankKind = "scotiabank"
	BankUnknown    BankKind = "generic"
)

// ParseMetadata holds statement-level summary figures. Fields are nil when the
// source layout has no dedicated summary line for them.
type ParseMetadata struct {
	OpeningBalance *decimal.Decimal `json:"openingBalance,omitempty"`
	ClosingBalance *decimal.Decimal `json:"closingBalance,omitempty"`
	TotalDebits    *decimal.Decimal `json:"totalDebits,omitempty"`
	TotalCredits   *decimal.Decimal `json:"totalCredits,omitempty"`
}

// Extraction is what a bank extractor produces from reconstructed text.
type Extraction struct {
	Transactions []Transaction
	Metadata     ParseMetadata
}

// ParseResult is the engine output for one document.
type ParseResult struct {
	BankName     string        `json:"bank"`
	Transactions []Transaction `json:"transactions"`
	Metadata     ParseMetadata `json:"metadata"`
	Confidence   float64       `json:"confidence"`
	RawText      string        `json:"rawText,omitempty"`
}

// Fragment is one positioned piece of page text from the extraction service.
// Y increases toward the top of the page.
type Fragment struct {
	Text string
	X    float64
	Y    float64
	EOL  bool // end-of-line hint from the extractor, not used by reconstruction
}
