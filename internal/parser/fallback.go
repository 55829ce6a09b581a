package parser

import (
	"regexp"
	"strings"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// FallbackExtractor is the last-resort strategy for layouts no profile
// recognized: a line must start with a recognizable date shape and contain a
// money literal somewhere after it. No continuation buffering is attempted —
// on an unknown layout precision beats recall.
type FallbackExtractor struct{}

func (e *FallbackExtractor) BankName() string {
	return fallbackProfile.Name
}

var (
	fallbackDatePattern = regexp.MustCompile(
		`^\s*-?\s*(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{2,4}|[A-Z][a-z]{2}\s+\d{1,2})`)
	fallbackAmountPattern = regexp.MustCompile(`(-?\$?[\d,]+\.\d{2})\s*(CR|DR)?`)
	edgePunctuation       = regexp.MustCompile(`^[\s\-\|\.\,]+|[\s\-\|\.\,]+$`)
)

func (e *FallbackExtractor) Extract(text string) (*models.Extraction, error) {
	var txns []models.Transaction

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if IsGarbage(line) {
			continue
		}

		dm := fallbackDatePattern.FindStringSubmatch(line)
		am := fallbackAmountPattern.FindStringSubmatch(line)
		if dm == nil || am == nil {
			continue
		}
		dateStr, amountStr, marker := dm[1], am[1], am[2]

		description := line[strings.Index(line, dateStr)+len(dateStr):]
		description = strings.Replace(description, amountStr, "", 1)
		if marker != "" {
			description = strings.Replace(description, marker, "", 1)
		}
		description = edgePunctuation.ReplaceAllString(description, "")
		description = collapseSpaces(description)

		if len(description) <= 2 || pureDigits.MatchString(description) {
			continue
		}

		amount, err := parseAmount(amountStr)
		if err != nil {
			continue
		}

		direction := models.Debit
		if amount.IsNegative() {
			direction = models.Credit
		}
		if strings.Contains(line, "CR") || strings.Contains(line, "Credit") {
			direction = models.Credit
		}

		txns = append(txns, models.Transaction{
			Date:             normalizeDate(dateStr, DateAuto),
			OriginalDateText: dateStr,
			Description:      description,
			Amount:           amount.Abs(),
			Direction:        direction,
			RawLine:          line,
		})
	}

	return &models.Extraction{Transactions: txns}, nil
}
