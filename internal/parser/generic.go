package parser

import (
	"strings"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// GenericExtractor handles banks whose statements are one transaction per
// line with a uniform "date, description, amount[, marker]" grammar (TD, BMO,
// Scotiabank). Wrapped descriptions are supported: a non-matching line is
// buffered and prepended to the next matched transaction.
type GenericExtractor struct {
	Profile Profile
}

func (e *GenericExtractor) BankName() string {
	return e.Profile.Name
}

func (e *GenericExtractor) Extract(text string) (*models.Extraction, error) {
	var txns []models.Transaction
	var buffer string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		// Garbage lines are section boundaries: the buffer cannot belong
		// to whatever follows.
		if IsGarbage(line) {
			buffer = ""
			continue
		}

		m := e.Profile.Transaction.FindStringSubmatch(line)
		if m == nil {
			if line != "" {
				// Presumed start or continuation of a wrapped description.
				if buffer != "" {
					buffer += " "
				}
				buffer += line
			}
			continue
		}

		dateStr, desc, amountStr := m[1], m[2], m[3]
		marker := ""
		if len(m) > 4 {
			marker = m[4]
		}

		amount, err := parseAmount(amountStr)
		if err != nil {
			buffer = ""
			continue
		}

		direction := resolveDirection(line, marker, amount)
		// Debits are carried as a negative intermediate before being
		// normalized to magnitude + direction.
		if direction == models.Debit {
			amount = amount.Abs().Neg()
		}

		description := strings.TrimSpace(buffer + " " + strings.TrimSpace(desc))
		buffer = ""

		txns = append(txns, models.Transaction{
			Date:             normalizeDate(dateStr, e.Profile.DateFormat),
			OriginalDateText: dateStr,
			Description:      description,
			Amount:           amount.Abs(),
			Direction:        direction,
			RawLine:          line,
		})
	}

	return &models.Extraction{Transactions: txns}, nil
}
