// Package engine orchestrates the extraction pipeline: reconstruct text,
// gate on image-only and duplicate documents, identify the bank, dispatch the
// matching extractor, and score the result.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/autobookkeeping/statement-extractor/internal/extractor"
	"github.com/autobookkeeping/statement-extractor/internal/models"
	"github.com/autobookkeeping/statement-extractor/internal/parser"
	"github.com/autobookkeeping/statement-extractor/internal/registry"
)

// minTextLength is the shortest reconstructed text that can be a statement.
// Anything below it is an image-only PDF.
const minTextLength = 50

// Engine runs the pipeline. Each Extract call builds fresh extractor state,
// so one Engine may serve concurrent documents.
type Engine struct {
	registry registry.Registry
	log      zerolog.Logger
}

func New(reg registry.Registry, log zerolog.Logger) *Engine {
	return &Engine{registry: reg, log: log}
}

// Extract runs the full pipeline over one document and returns the typed
// result. ErrImagePDF and ErrDuplicateFile abort before any bank-specific
// work; every other irregularity degrades locally into a lower confidence
// score rather than an error.
func (e *Engine) Extract(ctx context.Context, src extractor.Source) (*models.ParseResult, error) {
	text, err := extractor.ReconstructDocument(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("text extraction: %w", err)
	}
	e.log.Debug().Int("pages", src.PageCount()).Int("chars", len(text)).Msg("reconstructed document text")

	if len(strings.TrimSpace(text)) < minTextLength {
		return nil, ErrImagePDF
	}

	hash := registry.Hash(text)
	seen, err := e.registry.Seen(ctx, hash)
	if err != nil {
		// Registry trouble is a degradation, not a document failure.
		e.log.Warn().Err(err).Msg("duplicate check failed, continuing without it")
	} else if seen {
		e.log.Info().Str("hash", hash).Msg("duplicate document rejected")
		return nil, ErrDuplicateFile
	}

	profile, identified := parser.Identify(text)
	if identified {
		e.log.Info().Str("bank", profile.Name).Msg("identified bank")
	} else {
		e.log.Warn().Msg("no bank profile matched, using fallback extractor")
	}

	ext, err := parser.New(profile.Kind)
	if err != nil {
		return nil, err
	}
	extraction, err := ext.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("%s extraction: %w", profile.Name, err)
	}

	confidence := parser.Confidence(extraction.Transactions)
	e.log.Info().
		Str("bank", profile.Name).
		Int("transactions", len(extraction.Transactions)).
		Float64("confidence", confidence).
		Msg("extraction complete")

	// Mark even a zero-transaction result: the document itself was consumed.
	if err := e.registry.Mark(ctx, hash); err != nil {
		e.log.Warn().Err(err).Msg("failed to record document hash")
	}

	txns := extraction.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}

	return &models.ParseResult{
		BankName:     ext.BankName(),
		Transactions: txns,
		Metadata:     extraction.Metadata,
		Confidence:   confidence,
		RawText:      text,
	}, nil
}
