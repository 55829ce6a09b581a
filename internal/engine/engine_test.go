package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobookkeeping/statement-extractor/internal/models"
	"github.com/autobookkeeping/statement-extractor/internal/registry"
)

// fakeSource serves pre-built fragment pages, standing in for a PDF.
type fakeSource struct {
	pages [][]models.Fragment
}

func (f *fakeSource) PageCount() int { return len(f.pages) }

func (f *fakeSource) Fragments(_ context.Context, page int) ([]models.Fragment, error) {
	return f.pages[page-1], nil
}

// pageOf lays lines out top-to-bottom as one fragment per visual row.
func pageOf(lines ...string) []models.Fragment {
	frags := make([]models.Fragment, 0, len(lines))
	y := 800.0
	for _, line := range lines {
		frags = append(frags, models.Fragment{Text: line, X: 50, Y: y})
		y -= 12
	}
	return frags
}

// tdLines is a minimal TD statement; the column-header line separates the
// masthead from the rows so no header text bleeds into a description.
var tdLines = []string{
	"TD Canada Trust",
	"Date Description Amount",
	"01/15/2024 GROCERY STORE PURCHASE 45.67",
	"01/16/2024 PAYROLL DEPOSIT 1,250.00",
	"01/17/2024 MONTHLY PLAN FEE 16.95",
}

func tdStatement() *fakeSource {
	return &fakeSource{pages: [][]models.Fragment{pageOf(tdLines...)}}
}

func newTestEngine() *Engine {
	return New(registry.NewMemory(), zerolog.Nop())
}

func TestExtract(t *testing.T) {
	result, err := newTestEngine().Extract(context.Background(), tdStatement())
	require.NoError(t, err)

	assert.Equal(t, "TD Canada Trust", result.BankName)
	require.Len(t, result.Transactions, 3)

	assert.Equal(t, "2024-01-15", result.Transactions[0].Date)
	assert.Equal(t, models.Debit, result.Transactions[0].Direction)
	assert.Equal(t, models.Credit, result.Transactions[1].Direction)
	assert.Equal(t, models.Debit, result.Transactions[2].Direction)

	// Fewer than five rows costs exactly one confidence check.
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
	assert.NotEmpty(t, result.RawText)
}

func TestExtractAmountsAreMagnitudes(t *testing.T) {
	result, err := newTestEngine().Extract(context.Background(), tdStatement())
	require.NoError(t, err)

	for _, txn := range result.Transactions {
		assert.False(t, txn.Amount.IsNegative(), "txn %q carries a signed amount", txn.Description)
		assert.Contains(t, []models.Direction{models.Debit, models.Credit}, txn.Direction)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	// Same document through two independent engines yields identical output.
	first, err := newTestEngine().Extract(context.Background(), tdStatement())
	require.NoError(t, err)
	second, err := newTestEngine().Extract(context.Background(), tdStatement())
	require.NoError(t, err)

	assert.Equal(t, first.BankName, second.BankName)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.RawText, second.RawText)
	require.Equal(t, len(first.Transactions), len(second.Transactions))
	for i := range first.Transactions {
		a, b := first.Transactions[i], second.Transactions[i]
		assert.Equal(t, a.Date, b.Date)
		assert.Equal(t, a.Description, b.Description)
		assert.True(t, a.Amount.Equal(b.Amount))
		assert.Equal(t, a.Direction, b.Direction)
	}
}

func TestExtractRejectsDuplicateDocument(t *testing.T) {
	eng := newTestEngine()

	_, err := eng.Extract(context.Background(), tdStatement())
	require.NoError(t, err)

	_, err = eng.Extract(context.Background(), tdStatement())
	require.ErrorIs(t, err, ErrDuplicateFile)
}

func TestExtractRejectsImageOnlyPDF(t *testing.T) {
	src := &fakeSource{pages: [][]models.Fragment{pageOf("SCAN0001")}}

	_, err := newTestEngine().Extract(context.Background(), src)
	require.ErrorIs(t, err, ErrImagePDF)
}

// downRegistry fails every call, simulating a persistent backend outage.
type downRegistry struct{}

func (downRegistry) Seen(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func (downRegistry) Mark(context.Context, string) error {
	return errors.New("connection refused")
}

func TestExtractSurvivesRegistryOutage(t *testing.T) {
	eng := New(downRegistry{}, zerolog.Nop())

	result, err := eng.Extract(context.Background(), tdStatement())
	require.NoError(t, err, "registry trouble must never fail the document")
	assert.Len(t, result.Transactions, 3)
}

func TestExtractFragmentOrderIndependence(t *testing.T) {
	ordered := tdStatement()

	scrambled := &fakeSource{pages: [][]models.Fragment{nil}}
	page := pageOf(tdLines...)
	for i := len(page) - 1; i >= 0; i-- {
		scrambled.pages[0] = append(scrambled.pages[0], page[i])
	}

	a, err := newTestEngine().Extract(context.Background(), ordered)
	require.NoError(t, err)
	b, err := newTestEngine().Extract(context.Background(), scrambled)
	require.NoError(t, err)

	assert.Equal(t, a.RawText, b.RawText, "reconstruction must not depend on fragment arrival order")
}
