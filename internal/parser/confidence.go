package parser

import (
	"time"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// Confidence scores the extracted list in [0,1]: the fraction of quality
// checks that pass. An empty extraction scores zero outright.
func Confidence(txns []models.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}

	checks := []bool{
		allDatesValid(txns),
		allAmountsValid(txns),
		allDescriptionsPresent(txns),
		len(txns) >= 5,
		noDuplicatePairs(txns),
	}

	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return float64(passed) / float64(len(checks))
}

func allDatesValid(txns []models.Transaction) bool {
	for _, t := range txns {
		if _, err := time.Parse("2006-01-02", t.Date); err != nil {
			return false
		}
	}
	return true
}

func allAmountsValid(txns []models.Transaction) bool {
	for _, t := range txns {
		if t.Amount.IsNegative() {
			return false
		}
	}
	return true
}

func allDescriptionsPresent(txns []models.Transaction) bool {
	for _, t := range txns {
		if t.Description == "" {
			return false
		}
	}
	return true
}

// noDuplicatePairs checks for exact (date, amount) collisions, a sign that
// the same rows were scanned twice.
func noDuplicatePairs(txns []models.Transaction) bool {
	seen := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		key := t.Date + "|" + t.Amount.String()
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}
