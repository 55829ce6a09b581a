package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// moneyPattern matches a decimal money token like "-1,234.56" or "221.33".
var moneyPattern = regexp.MustCompile(`-?\$?[\d,]+\.\d{2}`)

// parseAmount converts a money token like "-$1,234.56" to a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// firstAmount returns the first money token found on the line, if any.
func firstAmount(line string) (decimal.Decimal, bool) {
	m := moneyPattern.FindString(line)
	if m == "" {
		return decimal.Zero, false
	}
	amt, err := parseAmount(m)
	if err != nil {
		return decimal.Zero, false
	}
	return amt, true
}

// lastAmount returns the last money token found on the line, if any.
func lastAmount(line string) (decimal.Decimal, bool) {
	all := moneyPattern.FindAllString(line, -1)
	if len(all) == 0 {
		return decimal.Zero, false
	}
	amt, err := parseAmount(all[len(all)-1])
	if err != nil {
		return decimal.Zero, false
	}
	return amt, true
}

var monthIndex = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// isoDate formats a year/month/day triple as YYYY-MM-DD.
func isoDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// normalizeDate converts a captured date string to YYYY-MM-DD according to
// the profile's date shape. When the text cannot be parsed, the raw string is
// returned unchanged; the confidence scorer will notice.
func normalizeDate(dateStr string, format DateFormat) string {
	s := strings.TrimSpace(dateStr)
	switch format {
	case DateISO:
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return s
		}
	case DateSlashMDY:
		if t, err := time.Parse("1/2/2006", s); err == nil {
			return t.Format("2006-01-02")
		}
	case DateSlashMDYShort:
		if t, err := time.Parse("1/2/06", s); err == nil {
			return t.Format("2006-01-02")
		}
	case DateMonthDay:
		// No year in the token; assume the current year.
		if t, err := time.Parse("Jan 2", s); err == nil {
			return isoDate(time.Now().Year(), t.Month(), t.Day())
		}
	case DateAuto:
		for _, layout := range []string{"2006-01-02", "1/2/2006", "1/2/06"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02")
			}
		}
		if t, err := time.Parse("Jan 2", s); err == nil {
			return isoDate(time.Now().Year(), t.Month(), t.Day())
		}
	}
	return s
}

var (
	debitKeywords  = regexp.MustCompile(`(?i)purchase|payment|withdrawal|fee|charge`)
	creditKeywords = regexp.MustCompile(`(?i)deposit|credit|refund|interest`)
)

// resolveDirection picks a direction for a generic-grammar line, in priority
// order: explicit debit/credit marker, keyword heuristics, then the sign of
// the raw amount.
func resolveDirection(line, marker string, amount decimal.Decimal) models.Direction {
	switch strings.TrimSpace(marker) {
	case "D", "DR":
		return models.Debit
	case "C", "CR":
		return models.Credit
	}
	if debitKeywords.MatchString(line) {
		return models.Debit
	}
	if creditKeywords.MatchString(line) {
		return models.Credit
	}
	if amount.IsNegative() {
		return models.Debit
	}
	return models.Credit
}

// collapseSpaces normalizes internal whitespace to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var pureDigits = regexp.MustCompile(`^\d+$`)

// atoiOr returns the parsed int or the fallback.
func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
