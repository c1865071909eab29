// Package calculator projects the return of an investment held for a number
// of years at a fixed annual yield, compounded monthly.
//
// All results are rounded to two decimal places, half away from zero.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Accepted input ranges.
const (
	MinAmount = 50
	MaxAmount = 10000
	MinYield  = 3
	MaxYield  = 25
	MinPeriod = 1
	MaxPeriod = 30
)

// ErrInvalidInput is wrapped by every *ValidationError.
var ErrInvalidInput = errors.New("invalid calculator input")

// ValidationError reports the first input field that is out of range.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Msg }

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Input is a projection request. Amount is in UF, ExpectedYield is an annual
// percentage and Period is in whole years. PropertyType is informational.
type Input struct {
	Amount        float64 `json:"amount"`
	ExpectedYield float64 `json:"expectedYield"`
	Period        int     `json:"period"`
	PropertyType  string  `json:"propertyType,omitempty"`
}

// Projection is the result of Calculate.
type Projection struct {
	InitialAmount float64 `json:"initialAmount"`
	FutureValue   float64 `json:"futureValue"`
	TotalProfit   float64 `json:"totalProfit"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	YearlyReturn  float64 `json:"yearlyReturn"`
	TotalROI      float64 `json:"totalROI"`
	Period        int     `json:"period"`
}

// YearPoint is the balance at the end of one year of a Schedule.
type YearPoint struct {
	Year    int     `json:"year"`
	Balance float64 `json:"balance"`
	Profit  float64 `json:"profit"`
}

// Validate checks every field against its accepted range.
func (in Input) Validate() error {
	switch {
	case math.IsNaN(in.Amount) || in.Amount < MinAmount || in.Amount > MaxAmount:
		return &ValidationError{Field: "amount", Msg: fmt.Sprintf("must be between %d and %d", MinAmount, MaxAmount)}
	case math.IsNaN(in.ExpectedYield) || in.ExpectedYield < MinYield || in.ExpectedYield > MaxYield:
		return &ValidationError{Field: "expectedYield", Msg: fmt.Sprintf("must be between %d and %d", MinYield, MaxYield)}
	case in.Period < MinPeriod || in.Period > MaxPeriod:
		return &ValidationError{Field: "period", Msg: fmt.Sprintf("must be between %d and %d", MinPeriod, MaxPeriod)}
	}
	return nil
}

// Calculate validates in and returns its projection. On error the returned
// Projection is the zero value.
func Calculate(in Input) (Projection, error) {
	if err := in.Validate(); err != nil {
		return Projection{}, err
	}

	fv := compound(in.Amount, in.ExpectedYield, in.Period*12)
	profit := fv - in.Amount
	monthly := in.Amount * in.ExpectedYield / 100 / 12

	return Projection{
		InitialAmount: round2(in.Amount),
		FutureValue:   round2(fv),
		TotalProfit:   round2(profit),
		MonthlyIncome: round2(monthly),
		YearlyReturn:  round2(monthly * 12),
		TotalROI:      round2(profit / in.Amount * 100),
		Period:        in.Period,
	}, nil
}

// Schedule returns the year-end balance and accumulated profit for every
// year of the period.
func Schedule(in Input) ([]YearPoint, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	out := make([]YearPoint, 0, in.Period)
	for y := 1; y <= in.Period; y++ {
		bal := compound(in.Amount, in.ExpectedYield, y*12)
		out = append(out, YearPoint{Year: y, Balance: round2(bal), Profit: round2(bal - in.Amount)})
	}
	return out, nil
}

func compound(amount, yield float64, months int) float64 {
	rate := yield / 100 / 12
	return amount * math.Pow(1+rate, float64(months))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
