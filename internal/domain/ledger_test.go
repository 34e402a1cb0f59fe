package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(start string, predicted float64) DeliveryRecord {
	return DeliveryRecord{
		StartLocation:  start,
		EndLocation:    "Warangal",
		DistanceKm:     150,
		TimeMin:        180,
		Vehicle:        Van,
		FuelUsedL:      12.5,
		FuelCostRs:     1250,
		PredictedCO2Kg: predicted,
		FormulaCO2Kg:   32.5,
	}
}

func TestSessionLedgerAppendPreservesOrder(t *testing.T) {
	// build test data
	l := NewSessionLedger()
	require.True(t, l.Empty())

	// call the method under test
	l.Append(sampleRecord("A", 1))
	assert.Equal(t, 1, l.Len())
	l.Append(sampleRecord("B", 2))
	l.Append(sampleRecord("C", 3))

	// verify behavior
	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].StartLocation)
	assert.Equal(t, "B", all[1].StartLocation)
	assert.Equal(t, "C", all[2].StartLocation)
	assert.False(t, l.Empty())
}

func TestSessionLedgerAllIsACopy(t *testing.T) {
	l := NewSessionLedger()
	l.Append(sampleRecord("A", 1))

	all := l.All()
	all[0].StartLocation = "mutated"

	got, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, "A", got.StartLocation)
}

func TestSessionLedgerClear(t *testing.T) {
	for _, size := range []int{0, 1, 5} {
		l := NewSessionLedger()
		for i := 0; i < size; i++ {
			l.Append(sampleRecord("A", float64(i)))
		}

		l.Clear()

		assert.Empty(t, l.All(), "size %d", size)
		assert.True(t, l.Empty())
	}

	l := NewSessionLedger()
	l.Append(sampleRecord("A", 1))
	l.Clear()
	l.Append(sampleRecord("B", 2))
	assert.Equal(t, 1, l.Len())
}

func TestSessionLedgerAggregate(t *testing.T) {
	l := NewSessionLedger()
	l.Append(sampleRecord("A", 10))
	l.Append(sampleRecord("B", 20))
	l.Append(sampleRecord("C", 30))

	series, err := l.Aggregate("Predicted_CO2_kg")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, series)
	assert.Len(t, series, l.Len())

	cost, err := l.Aggregate("Fuel_Cost_Rs")
	require.NoError(t, err)
	assert.Equal(t, []float64{1250, 1250, 1250}, cost)

	_, err = l.Aggregate("Vehicle")
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = l.Aggregate("nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSessionLedgerAggregateEmpty(t *testing.T) {
	series, err := NewSessionLedger().Aggregate("Distance_km")
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestSessionLedgerAt(t *testing.T) {
	l := NewSessionLedger()
	l.Append(sampleRecord("A", 1))

	_, err := l.At(1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = l.At(-1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSessionLedgerSummary(t *testing.T) {
	l := NewSessionLedger()
	l.Append(sampleRecord("A", 10))
	l.Append(sampleRecord("B", 20))

	s := l.Summary()
	assert.Equal(t, 2, s.Deliveries)
	assert.InDelta(t, 300, s.TotalDistanceKm, 1e-9)
	assert.InDelta(t, 25, s.TotalFuelUsedL, 1e-9)
	assert.InDelta(t, 2500, s.TotalFuelCost, 1e-9)
	assert.InDelta(t, 30, s.TotalPredictedCO2, 1e-9)
	assert.InDelta(t, 65, s.TotalFormulaCO2, 1e-9)
}
