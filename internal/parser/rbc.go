package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// RBCExtractor handles the RBC chequing multi-column layout:
//
//	Date   Description   Cheques & Debits ($)   Deposits & Credits ($)   Balance ($)
//
// Dates lead a line as "DD Mon" with no year and apply to every following row
// until the next date. Long descriptions wrap onto their own lines, so lines
// without a money token are buffered rather than discarded. Direction is
// resolved by reconciling the trailing balance column against a running
// balance; keyword heuristics are only the fallback.
type RBCExtractor struct{}

func (e *RBCExtractor) BankName() string {
	return "RBC Royal Bank"
}

var (
	rbcDatePattern   = regexp.MustCompile(`^(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b`)
	rbcPeriodPattern = regexp.MustCompile(`(?i)from\s+\w+\s+\d{1,2},?\s+(\d{4})\s+to`)
	rbcYearPattern   = regexp.MustCompile(`\b20[2-3]\d\b`)
	rbcNoisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)statement period`),
		regexp.MustCompile(`(?i)royal bank`),
		regexp.MustCompile(`(?i)page \d+`),
	}
	rbcCreditKeywords = []string{
		"deposit", "credit", "redemption", "received", "rcvd", "return",
		"refund", "interest", "dividend", "royalty",
	}
)

// balanceTolerance absorbs rounding noise when reconciling the balance column.
var balanceTolerance = decimal.NewFromFloat(0.05)

// rbcScanner is the mutable scanning state threaded through the line fold.
type rbcScanner struct {
	year      int
	prevMonth time.Month // 0 until the first dated line
	day       int
	month     time.Month
	dateText  string
	buffer    string
	running   *decimal.Decimal
	meta      models.ParseMetadata
	txns      []models.Transaction
}

func (e *RBCExtractor) Extract(text string) (*models.Extraction, error) {
	s := &rbcScanner{year: detectStartYear(text)}
	for _, raw := range strings.Split(text, "\n") {
		s.scanLine(strings.TrimSpace(raw))
	}
	return &models.Extraction{Transactions: s.txns, Metadata: s.meta}, nil
}

// detectStartYear finds the statement's starting year: the explicit
// statement-period phrase first, then any four-digit year literal, then the
// current calendar year as a last resort.
func detectStartYear(text string) int {
	if m := rbcPeriodPattern.FindStringSubmatch(text); m != nil {
		return atoiOr(m[1], time.Now().Year())
	}
	if m := rbcYearPattern.FindString(text); m != "" {
		return atoiOr(m, time.Now().Year())
	}
	return time.Now().Year()
}

func (s *rbcScanner) scanLine(line string) {
	if line == "" {
		s.buffer = ""
		return
	}

	// Summary lines are metadata, never transactions, even when they also
	// carry a date prefix. Parse them before the garbage filter eats them;
	// like any boilerplate line, they end the section, so the buffer goes.
	if s.captureMetadata(line) {
		s.buffer = ""
		return
	}

	if IsGarbage(line) {
		s.buffer = ""
		return
	}
	for _, p := range rbcNoisePatterns {
		if p.MatchString(line) {
			return
		}
	}

	dated := false
	if m := rbcDatePattern.FindStringSubmatch(line); m != nil {
		dated = true
		s.dateText = m[0]
		s.day = atoiOr(m[1], 1)
		month := monthIndex[m[2]]
		// Year rollover: a month earlier than the previous one means the
		// statement crossed a year boundary (Dec -> Jan).
		if s.prevMonth != 0 && month < s.prevMonth {
			s.year++
		}
		s.prevMonth = month
		s.month = month
		line = strings.TrimSpace(line[len(m[0]):])
	}

	// Header noise before the first dated row.
	if s.dateText == "" {
		return
	}

	amounts := moneyPattern.FindAllString(line, -1)
	if len(amounts) == 0 {
		s.bufferOrphan(line, dated)
		return
	}

	s.resolveTransaction(line, amounts)
}

// bufferOrphan handles a line with text but no money token. A fresh date
// means the description wrapped onto the date's own line and replaces the
// buffer; otherwise the text continues a not-yet-terminated description.
// Pure digit runs are layout noise and are ignored.
func (s *rbcScanner) bufferOrphan(line string, dated bool) {
	if dated {
		s.buffer = line
		return
	}
	if pureDigits.MatchString(line) {
		return
	}
	if s.buffer != "" {
		s.buffer += " "
	}
	s.buffer += line
}

var rbcSummaryWords = regexp.MustCompile(`(?i)balance|total`)

// resolveTransaction finalizes one row: the first money token is the amount,
// the text before it (merged with the buffer) is the description, and the
// last token, when there are two or more, is the row's post-transaction
// balance used for direction reconciliation.
func (s *rbcScanner) resolveTransaction(line string, amounts []string) {
	firstIdx := strings.Index(line, amounts[0])
	description := strings.TrimSpace(line[:firstIdx])

	switch {
	case description == "" && s.buffer != "":
		description = s.buffer
	case description != "" && s.buffer != "":
		description = s.buffer + " " + description
	case description == "":
		description = "Transaction"
	}
	s.buffer = ""

	// Secondary summary rows mimic transactions but name balances/totals.
	if rbcSummaryWords.MatchString(description) {
		return
	}

	amount, err := parseAmount(amounts[0])
	if err != nil {
		return
	}

	direction := rbcKeywordDirection(description)

	var rowBalance *decimal.Decimal
	if len(amounts) >= 2 {
		if bal, err := parseAmount(amounts[len(amounts)-1]); err == nil {
			rowBalance = &bal
			if s.running != nil {
				delta := bal.Sub(*s.running)
				if delta.Sub(amount).Abs().LessThan(balanceTolerance) {
					direction = models.Credit
				} else if delta.Add(amount).Abs().LessThan(balanceTolerance) {
					direction = models.Debit
				}
			}
			// Track the printed balance even when classification fell back
			// to keywords, so drift never accumulates.
			s.running = &bal
		}
	}

	s.txns = append(s.txns, models.Transaction{
		Date:             isoDate(s.year, s.month, s.day),
		OriginalDateText: s.dateText + " " + strconv.Itoa(s.year),
		Description:      description,
		Amount:           amount.Abs(),
		Direction:        direction,
		Balance:          rowBalance,
		RawLine:          line,
	})
}

// captureMetadata parses opening/closing balance and totals summary lines
// into ParseMetadata. Returns true when the line was a summary line, which
// also excludes it from transaction candidacy.
func (s *rbcScanner) captureMetadata(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "opening balance"):
		if v, ok := firstAmount(line); ok {
			s.meta.OpeningBalance = &v
			if s.running == nil {
				s.running = &v
			}
		}
		return true
	case strings.Contains(lower, "closing balance"):
		if v, ok := firstAmount(line); ok {
			s.meta.ClosingBalance = &v
		}
		return true
	case strings.Contains(lower, "total deposits") && strings.Contains(lower, "credits"):
		if v, ok := firstAmount(line); ok {
			s.meta.TotalCredits = &v
		}
		return true
	case strings.Contains(lower, "total cheques") && strings.Contains(lower, "debits"):
		if v, ok := firstAmount(line); ok {
			s.meta.TotalDebits = &v
		}
		return true
	}
	return false
}

// rbcKeywordDirection is the fallback classifier when balance reconciliation
// is unavailable or inconclusive. Unknown rows default to debit.
func rbcKeywordDirection(description string) models.Direction {
	lower := strings.ToLower(description)
	for _, kw := range rbcCreditKeywords {
		if strings.Contains(lower, kw) {
			return models.Credit
		}
	}
	return models.Debit
}
