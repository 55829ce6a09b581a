package extractor

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/autobookkeeping/statement-extractor/internal/models"
)

// rowTolerance is the vertical distance within which two fragments belong to
// the same visual row.
const rowTolerance = 2

// ReconstructPage orders a page's fragments top-to-bottom, left-to-right and
// joins them into text lines. Fragments whose y coordinates differ by less
// than the tolerance share a row and are joined with single spaces; a larger
// vertical displacement starts a new line.
func ReconstructPage(frags []models.Fragment) string {
	if len(frags) == 0 {
		return ""
	}

	sorted := make([]models.Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if math.Abs(a.Y-b.Y) < rowTolerance {
			return a.X < b.X
		}
		return a.Y > b.Y
	})

	var sb strings.Builder
	lastY := sorted[0].Y
	sb.WriteString(sorted[0].Text)
	for _, f := range sorted[1:] {
		if math.Abs(f.Y-lastY) > rowTolerance {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Text)
		lastY = f.Y
	}
	return sb.String()
}

// ReconstructDocument walks the source's pages in order and returns the whole
// document as one string, pages separated by a trailing newline. Pages are
// fetched sequentially: extractors downstream depend on document order.
func ReconstructDocument(ctx context.Context, src Source) (string, error) {
	var sb strings.Builder
	for i := 1; i <= src.PageCount(); i++ {
		frags, err := src.Fragments(ctx, i)
		if err != nil {
			return "", err
		}
		sb.WriteString(ReconstructPage(frags))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
