package parser

import "regexp"

// garbagePatterns is the fixed, ordered list of boilerplate predicates shared
// by every extractor: balance summaries, page footers, statement headers,
// column-header repeats, and blank lines.
var garbagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opening balance`),
	regexp.MustCompile(`(?i)closing balance`),
	regexp.MustCompile(`(?i)beginning balance`),
	regexp.MustCompile(`(?i)ending balance`),
	regexp.MustCompile(`(?i)page \d+ of \d+`),
	regexp.MustCompile(`(?i)statement period`),
	regexp.MustCompile(`(?i)account number`),
	regexp.MustCompile(`(?i)account summary`),
	regexp.MustCompile(`(?i)transaction history`),
	regexp.MustCompile(`^\s*$`),
	regexp.MustCompile(`(?i)^date\s+description\s+amount`),
	regexp.MustCompile(`(?i)^total`),
	regexp.MustCompile(`(?i)account activity`),
	regexp.MustCompile(`(?i)continued`),
	regexp.MustCompile(`(?i)description.+cheques.+debits`),
	regexp.MustCompile(`(?i)deposits.+credits.+balance`),
}

// IsGarbage reports whether the line is statement boilerplate rather than a
// transaction candidate. Extractors buffering a wrapped description must drop
// the buffer when this returns true: a garbage line is a section boundary.
func IsGarbage(line string) bool {
	for _, p := range garbagePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
