package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// Source supplies positioned page text. The engine never touches the document
// format itself; anything that can hand back per-page fragments can drive it.
type Source interface {
	// PageCount returns the number of pages in the document.
	PageCount() int
	// Fragments returns the ordered positioned text fragments of one page.
	// Pages are numbered from 1.
	Fragments(ctx context.Context, page int) ([]models.Fragment, error)
}

// PDFSource reads fragments from a PDF file.
type PDFSource struct {
	file   interface{ Close() error }
	reader *pdf.Reader
}

// Open opens a PDF file as a fragment source. Callers must Close it.
func Open(path string) (*PDFSource, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", path, err)
	}
	if r.NumPage() == 0 {
		f.Close()
		return nil, fmt.Errorf("pdf %q has no pages", path)
	}
	return &PDFSource{file: f, reader: r}, nil
}

func (s *PDFSource) Close() error {
	return s.file.Close()
}

func (s *PDFSource) PageCount() int {
	return s.reader.NumPage()
}

// Fragments extracts the page's text objects with their coordinates. The pdf
// library panics on some malformed documents, so the call is fenced.
func (s *PDFSource) Fragments(ctx context.Context, page int) (frags []models.Fragment, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed on page %d: %v", page, r)
		}
	}()

	p := s.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}
	for _, t := range p.Content().Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		frags = append(frags, models.Fragment{Text: t.S, X: t.X, Y: t.Y})
	}
	return frags, nil
}
