package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_ReferenceCase(t *testing.T) {
	got, err := Calculate(Input{Amount: 200, ExpectedYield: 12, Period: 3})
	require.NoError(t, err)

	assert.Equal(t, Projection{
		InitialAmount: 200,
		FutureValue:   286.15,
		TotalProfit:   86.15,
		MonthlyIncome: 2,
		YearlyReturn:  24,
		TotalROI:      43.08,
		Period:        3,
	}, got)
}

func TestCalculate_Pure(t *testing.T) {
	in := Input{Amount: 1234.5, ExpectedYield: 7.3, Period: 17, PropertyType: "Bodega"}
	a, errA := Calculate(in)
	b, errB := Calculate(in)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestCalculate_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"amount too low", Input{Amount: 10, ExpectedYield: 8, Period: 5}, "amount"},
		{"amount too high", Input{Amount: 10001, ExpectedYield: 8, Period: 5}, "amount"},
		{"yield too low", Input{Amount: 100, ExpectedYield: 2.99, Period: 5}, "expectedYield"},
		{"yield too high", Input{Amount: 100, ExpectedYield: 25.01, Period: 5}, "expectedYield"},
		{"period zero", Input{Amount: 100, ExpectedYield: 8, Period: 0}, "period"},
		{"period too long", Input{Amount: 100, ExpectedYield: 8, Period: 31}, "period"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, Projection{}, got)
		})
	}
}

func TestCalculate_InclusiveEdges(t *testing.T) {
	for _, in := range []Input{
		{Amount: MinAmount, ExpectedYield: MinYield, Period: MinPeriod},
		{Amount: MaxAmount, ExpectedYield: MaxYield, Period: MaxPeriod},
	} {
		p, err := Calculate(in)
		require.NoError(t, err)
		assert.Greater(t, p.FutureValue, p.InitialAmount)
		assert.Equal(t, in.Period, p.Period)
	}
}

func TestSchedule(t *testing.T) {
	in := Input{Amount: 200, ExpectedYield: 12, Period: 3}
	pts, err := Schedule(in)
	require.NoError(t, err)
	require.Len(t, pts, 3)

	assert.Equal(t, 1, pts[0].Year)
	assert.Equal(t, 225.37, pts[0].Balance)
	assert.Equal(t, 25.37, pts[0].Profit)

	proj, _ := Calculate(in)
	last := pts[len(pts)-1]
	assert.Equal(t, proj.FutureValue, last.Balance)
	assert.Equal(t, proj.TotalProfit, last.Profit)

	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].Balance, pts[i-1].Balance)
	}

	_, err = Schedule(Input{Amount: 1, ExpectedYield: 5, Period: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
