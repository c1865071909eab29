// Package services – CalculatorService
//
// This file adapts the calculator package to the service layer, adding
// tracing and outcome metrics.
package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tbourn/go-property-backend/internal/calculator"
	"github.com/tbourn/go-property-backend/internal/observability"
)

// CalculatorService projects investment returns.
type CalculatorService struct{}

// NewCalculatorService constructs a CalculatorService.
func NewCalculatorService() *CalculatorService { return &CalculatorService{} }

// Calculate returns the projection for in. Out-of-range input yields a
// *calculator.ValidationError.
func (s *CalculatorService) Calculate(ctx context.Context, in calculator.Input) (calculator.Projection, error) {
	_, span := observability.StartSpan(ctx, "services/CalculatorService", "Calculate",
		attribute.Float64("calc.amount", in.Amount),
		attribute.Float64("calc.yield", in.ExpectedYield),
		attribute.Int("calc.period", in.Period),
	)
	defer span.End()

	p, err := calculator.Calculate(in)
	observability.CalculationDone(err == nil)
	return p, observability.SpanError(span, err)
}

// Schedule returns the per-year breakdown for in.
func (s *CalculatorService) Schedule(ctx context.Context, in calculator.Input) ([]calculator.YearPoint, error) {
	_, span := observability.StartSpan(ctx, "services/CalculatorService", "Schedule")
	defer span.End()
	return calculator.Schedule(in)
}
