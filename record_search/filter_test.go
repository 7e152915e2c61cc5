package recordsearch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/expensebot/record"
	"github.com/w-h-a/expensebot/record/memory"
)

func float(v float64) *float64 {
	return &v
}

func newTestFilter(t *testing.T) *Filter {
	t.Helper()

	repo := memory.NewRepository(record.WithRecords(
		record.Record{
			Id:        "netflix-1",
			Title:     "Confirmación de pago - Netflix",
			Content:   "Tu suscripción mensual de $15.99 fue procesada.",
			Category:  "cargo-suscripcion",
			Timestamp: time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC),
		},
		record.Record{
			Id:        "amazon-1",
			Title:     "Tu pedido de Amazon",
			Content:   "Compra por $1,299.00: Laptop HP Pavilion.",
			Category:  "compra-online",
			Timestamp: time.Date(2024, 12, 5, 14, 30, 0, 0, time.UTC),
		},
		record.Record{
			Id:        "uber-1",
			Title:     "Recibo de tu viaje con Uber",
			Content:   "Viaje al aeropuerto por $31.47.",
			Category:  "transporte",
			Timestamp: time.Date(2024, 12, 10, 8, 15, 0, 0, time.UTC),
		},
		record.Record{
			Id:        "policy-1",
			Title:     "Política de viajes corporativos",
			Content:   "Los viajes deben aprobarse con antelación.",
			Category:  "recursos-humanos",
			Timestamp: time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
		},
	))

	return New(repo)
}

func TestFilterWithoutConstraintsReturnsEverything(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{})
	require.NoError(t, err)

	assert.Len(t, result.Records, 4)
}

func TestFilterBySenderIsCaseInsensitive(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{Sender: "NETFLIX"})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "netflix-1", result.Records[0].Id)
	assert.InDelta(t, 15.99, result.Records[0].Amount, 1e-9)
}

func TestFilterByCategory(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{Categories: []string{"Cargo-Suscripcion", "transporte"}})
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "netflix-1", result.Records[0].Id)
	assert.Equal(t, "uber-1", result.Records[1].Id)
}

func TestFilterByAmountRange(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{MinAmount: float(20), MaxAmount: float(100)})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "uber-1", result.Records[0].Id)
	assert.InDelta(t, 31.47, result.TotalAmount, 1e-9)
}

func TestFilterMinAmountExcludesAmountlessRecords(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{MinAmount: float(0.01)})
	require.NoError(t, err)

	// the policy record has no extractable amount and drops out
	assert.Len(t, result.Records, 3)
}

func TestFilterByDateRange(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{
		DateRange: &DateRange{
			Start: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 12, 6, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "netflix-1", result.Records[0].Id)
	assert.Equal(t, "amazon-1", result.Records[1].Id)
}

func TestFilterByOpenEndedDateRange(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{
		DateRange: &DateRange{Start: time.Date(2024, 12, 6, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "uber-1", result.Records[0].Id)
}

func TestFilterStagesCompose(t *testing.T) {
	f := newTestFilter(t)

	unconstrained, err := f.Filter(context.Background(), Params{Sender: "viaje"})
	require.NoError(t, err)

	constrained, err := f.Filter(context.Background(), Params{Sender: "viaje", MinAmount: float(1)})
	require.NoError(t, err)

	// adding a constraint never grows the result set
	assert.LessOrEqual(t, len(constrained.Records), len(unconstrained.Records))
	require.Len(t, constrained.Records, 1)
	assert.Equal(t, "uber-1", constrained.Records[0].Id)
}

func TestFilterTotalsSumExtractedAmounts(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{})
	require.NoError(t, err)

	assert.InDelta(t, 15.99+1299+31.47, result.TotalAmount, 1e-9)
}

func TestFilterSummary(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{Sender: "netflix"})
	require.NoError(t, err)

	assert.Contains(t, result.Summary, "Found 1 record")
	assert.Contains(t, result.Summary, "$15.99")
	assert.Contains(t, result.Summary, "sender: netflix")
}

func TestFilterNoMatchesSummary(t *testing.T) {
	f := newTestFilter(t)

	result, err := f.Filter(context.Background(), Params{Sender: "spotify"})
	require.NoError(t, err)

	assert.Empty(t, result.Records)
	assert.Zero(t, result.TotalAmount)
	assert.Equal(t, "No records matched the given search criteria.", result.Summary)
}
