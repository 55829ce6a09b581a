package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// CIBCExtractor handles CIBC credit-card statements:
//
//	Trans Date | Post Date | Description | Spend Category | Amount
//	Mar 22       Mar 23      CALG CO-OP GAS BAR   Transportation   27.22
//
// The posting date is discarded; only the transaction date is kept. The sign
// convention is inverted relative to chequing layouts: a negative amount is a
// payment or refund (credit), a positive amount is a purchase (debit).
type CIBCExtractor struct{}

func (e *CIBCExtractor) BankName() string {
	return "CIBC"
}

var (
	cibcDatePattern   = regexp.MustCompile(`^([A-Z][a-z]{2}\s+\d{1,2})\s+`)
	cibcAmountSuffix  = regexp.MustCompile(`-?[\d,]+\.\d{2}$`)
	cibcPeriodPattern = regexp.MustCompile(`(?i)Statement Period:.*?,?\s*(\d{4})`)
	// Trailing PascalCase word sequence; descriptions are upper-case, so a
	// mixed-case tail is the spend category column squashed onto the line.
	cibcPascalTail = regexp.MustCompile(`\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)$`)
)

// cibcCategories is the known spend-category vocabulary, checked before the
// looser PascalCase heuristic.
var cibcCategories = []string{
	"Transportation", "Restaurants", "Groceries", "Entertainment", "Gas",
	"Merchandise", "Health", "Services", "Dining", "Travel",
}

func (e *CIBCExtractor) Extract(text string) (*models.Extraction, error) {
	year := time.Now().Year()
	if m := cibcPeriodPattern.FindStringSubmatch(text); m != nil {
		year = atoiOr(m[1], year)
	}

	var txns []models.Transaction
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if IsGarbage(line) {
			continue
		}

		m := cibcDatePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		dateStr := m[1]
		content := strings.TrimSpace(line[len(m[0]):])

		// Discard the posting date if one immediately follows.
		if pm := cibcDatePattern.FindStringSubmatch(content); pm != nil {
			content = strings.TrimSpace(content[len(pm[0]):])
		}

		amountStr := cibcAmountSuffix.FindString(content)
		if amountStr == "" {
			continue
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			continue
		}
		descAndCat := strings.TrimSpace(content[:len(content)-len(amountStr)])

		description, category := splitCategory(descAndCat)

		direction := models.Debit
		if amount.IsNegative() {
			direction = models.Credit
		}

		parts := strings.Fields(dateStr)
		month := monthIndex[parts[0]]
		day := atoiOr(parts[1], 1)

		txns = append(txns, models.Transaction{
			Date:             isoDate(year, month, day),
			OriginalDateText: dateStr,
			Description:      description,
			Category:         category,
			Amount:           amount.Abs(),
			Direction:        direction,
			RawLine:          line,
		})
	}

	return &models.Extraction{Transactions: txns}, nil
}

// splitCategory strips a recognized spend category from the end of the
// description column. Known vocabulary wins; otherwise a trailing PascalCase
// word run is taken as the category.
func splitCategory(descAndCat string) (description, category string) {
	for _, cat := range cibcCategories {
		if strings.HasSuffix(descAndCat, cat) {
			return strings.TrimSpace(strings.TrimSuffix(descAndCat, cat)), cat
		}
	}
	if m := cibcPascalTail.FindStringSubmatch(descAndCat); m != nil {
		category = m[1]
		return strings.TrimSpace(descAndCat[:len(descAndCat)-len(category)]), category
	}
	return descAndCat, ""
}
