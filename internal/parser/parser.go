package parser

import (
	"fmt"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// Extractor turns reconstructed statement text into transactions. One
// implementation exists per bank kind plus the fallback; dispatch happens
// through New so the variant set stays closed.
type Extractor interface {
	// Extract scans the full document text and returns transactions plus
	// any statement-level metadata the layout exposes.
	Extract(text string) (*models.Extraction, error)
	// BankName returns the human-readable bank name.
	BankName() string
}

// New returns the extractor for the given bank kind.
func New(kind models.BankKind) (Extractor, error) {
	switch kind {
	case models.BankRBC:
		return &RBCExtractor{}, nil
	case models.BankCIBC:
		return &CIBCExtractor{}, nil
	case models.BankTD, models.BankBMO, models.BankScotiabank:
		profile, ok := ProfileFor(kind)
		if !ok {
			return nil, fmt.Errorf("no profile for bank kind %q", kind)
		}
		return &GenericExtractor{Profile: profile}, nil
	case models.BankUnknown:
		return &FallbackExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported bank kind: %q", kind)
	}
}
