package parser

import (
	"regexp"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// DateFormat is the shape of date text a profile's grammar captures.
type DateFormat int

const (
	DateSlashMDY      DateFormat = iota // MM/DD/YYYY
	DateSlashMDYShort                   // MM/DD/YY
	DateISO                             // YYYY-MM-DD
	DateMonthDay                        // Mon DD, no year
	DateDayMonth                        // DD Mon, no year
	DateAuto                            // unknown layout, try everything
)

// Profile describes one bank's statement layout: how to recognize the bank in
// the document text and how to match a transaction line. Grammars live here
// as data so new banks can be added without touching extractor logic.
type Profile struct {
	Kind        models.BankKind
	Name        string
	Identifier  *regexp.Regexp
	Transaction *regexp.Regexp // captures (date, description, amount, optional marker)
	DateFormat  DateFormat
}

// profiles is the static bank table, loaded once and never mutated.
// Identification returns the first match; the identifier patterns are
// mutually exclusive in practice since bank names rarely co-occur.
var profiles = []Profile{
	{
		Kind:        models.BankTD,
		Name:        "TD Canada Trust",
		Identifier:  regexp.MustCompile(`(?i)TD Canada Trust|TD Bank|TD CANADA`),
		Transaction: regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+(.+?)\s+(-?[\d,]+\.\d{2})\s*([CR])?`),
		DateFormat:  DateSlashMDY,
	},
	{
		Kind:       models.BankRBC,
		Name:       "RBC Royal Bank",
		Identifier: regexp.MustCompile(`(?i)Royal Bank|RBC|ROYAL BANK OF CANADA`),
		// The RBC column layout is handled by a dedicated scanner; the line
		// grammar here is only descriptive.
		Transaction: regexp.MustCompile(`(\d{1,2}\s+\w{3})\s+(.+?)\s+([\d,]+\.?\d{0,2})\s+([\d,]+\.?\d{0,2})?`),
		DateFormat:  DateDayMonth,
	},
	{
		Kind:        models.BankCIBC,
		Name:        "CIBC",
		Identifier:  regexp.MustCompile(`(?i)CIBC|Canadian Imperial Bank|Aventura`),
		Transaction: regexp.MustCompile(`(\w{3}\s+\d{1,2})\s+(.+?)\s+(-?[\d,]+\.\d{2})`),
		DateFormat:  DateMonthDay,
	},
	{
		Kind:        models.BankBMO,
		Name:        "BMO Bank of Montreal",
		Identifier:  regexp.MustCompile(`(?i)Bank of Montreal|BMO|BMO BANK`),
		Transaction: regexp.MustCompile(`(\d{2}/\d{2}/\d{2})\s+(.+?)\s+(-?[\d,]+\.\d{2})`),
		DateFormat:  DateSlashMDYShort,
	},
	{
		Kind:        models.BankScotiabank,
		Name:        "Scotiabank",
		Identifier:  regexp.MustCompile(`(?i)Scotiabank|Scotia|THE BANK OF NOVA SCOTIA`),
		Transaction: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s+(.+?)\s+(-?[\d,]+\.\d{2})`),
		DateFormat:  DateISO,
	},
}

// fallbackProfile describes the unidentified-source strategy.
var fallbackProfile = Profile{
	Kind:       models.BankUnknown,
	Name:       "Generic / Unknown Source",
	DateFormat: DateAuto,
}

// Identify matches the full reconstructed document text against the bank
// table and returns the first profile whose identifier appears anywhere in
// it. The second return is false when no bank matched; callers then proceed
// with the fallback profile.
func Identify(text string) (Profile, bool) {
	for _, p := range profiles {
		if p.Identifier.MatchString(text) {
			return p, true
		}
	}
	return fallbackProfile, false
}

// ProfileFor returns the static profile for a known bank kind.
func ProfileFor(kind models.BankKind) (Profile, bool) {
	for _, p := range profiles {
		if p.Kind == kind {
			return p, true
		}
	}
	if kind == models.BankUnknown {
		return fallbackProfile, true
	}
	return Profile{}, false
}

// SupportedBanks lists the human-readable names of all profiled banks.
func SupportedBanks() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}
