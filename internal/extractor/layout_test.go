package extractor

import (
	"context"
	"testing"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

func TestReconstructPage(t *testing.T) {
	tests := []struct {
		name     string
		frags    []models.Fragment
		expected string
	}{
		{
			name:     "empty page",
			frags:    nil,
			expected: "",
		},
		{
			name: "fragments on one row join with spaces",
			frags: []models.Fragment{
				{Text: "01/15/2024", X: 50, Y: 700},
				{Text: "GROCERY STORE", X: 150, Y: 700},
				{Text: "45.67", X: 400, Y: 700},
			},
			expected: "01/15/2024 GROCERY STORE 45.67",
		},
		{
			name: "left-to-right order restored within a row",
			frags: []models.Fragment{
				{Text: "45.67", X: 400, Y: 700},
				{Text: "01/15/2024", X: 50, Y: 700},
				{Text: "GROCERY STORE", X: 150, Y: 700},
			},
			expected: "01/15/2024 GROCERY STORE 45.67",
		},
		{
			name: "higher y comes first",
			frags: []models.Fragment{
				{Text: "second line", X: 50, Y: 688},
				{Text: "first line", X: 50, Y: 700},
			},
			expected: "first line\nsecond line",
		},
		{
			name: "sub-tolerance jitter stays on one row",
			frags: []models.Fragment{
				{Text: "baseline", X: 50, Y: 700},
				{Text: "jittered", X: 150, Y: 701.5},
			},
			expected: "baseline jittered",
		},
		{
			name: "vertical gap beyond tolerance breaks the line",
			frags: []models.Fragment{
				{Text: "above", X: 50, Y: 700},
				{Text: "below", X: 50, Y: 697},
			},
			expected: "above\nbelow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReconstructPage(tt.frags); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

type pageSource struct {
	pages [][]models.Fragment
}

func (s *pageSource) PageCount() int { return len(s.pages) }

func (s *pageSource) Fragments(_ context.Context, page int) ([]models.Fragment, error) {
	return s.pages[page-1], nil
}

func TestReconstructDocument(t *testing.T) {
	src := &pageSource{pages: [][]models.Fragment{
		{{Text: "page one", X: 50, Y: 700}},
		{{Text: "page two", X: 50, Y: 700}},
	}}

	got, err := ReconstructDocument(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "page one\npage two\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
