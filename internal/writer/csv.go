package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// CSVWriter writes an extraction result to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.ParseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the result in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.ParseResult) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	// Statement-level metadata as comment rows
	if w.IncludeHeader {
		if result.BankName != "" {
			cw.Write([]string{"# Bank", result.BankName})
		}
		writeMetaRow(cw, "# Opening Balance", result.Metadata.OpeningBalance)
		writeMetaRow(cw, "# Closing Balance", result.Metadata.ClosingBalance)
		writeMetaRow(cw, "# Total Debits", result.Metadata.TotalDebits)
		writeMetaRow(cw, "# Total Credits", result.Metadata.TotalCredits)
		cw.Write([]string{"# Confidence", fmt.Sprintf("%.2f", result.Confidence)})
	}

	header := []string{"Date", "Description", "Category", "Direction", "Amount", "Balance"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range result.Transactions {
		row := []string{
			txn.Date,
			txn.Description,
			txn.Category,
			string(txn.Direction),
			txn.Amount.StringFixed(2),
			formatBalance(txn.Balance),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func writeMetaRow(cw *csv.Writer, label string, value *decimal.Decimal) {
	if value == nil {
		return
	}
	cw.Write([]string{label, value.StringFixed(2)})
}

func formatBalance(balance *decimal.Decimal) string {
	if balance == nil {
		return ""
	}
	return balance.StringFixed(2)
}
