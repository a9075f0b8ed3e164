package metrics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bibbank/conveyor"

// DecisionRecorder implements port.DecisionRecorder with OpenTelemetry
// instruments.
type DecisionRecorder struct {
	offers  metric.Int64Counter
	credits metric.Int64Counter
	refused metric.Int64Counter
	rates   metric.Float64Histogram
}

// NewDecisionRecorder registers the conveyor instruments on provider.
func NewDecisionRecorder(provider metric.MeterProvider) (*DecisionRecorder, error) {
	meter := provider.Meter(meterName)

	offers, err := meter.Int64Counter("conveyor.offers.calculated",
		metric.WithDescription("Offer sets returned, by cache outcome"))
	if err != nil {
		return nil, fmt.Errorf("create offers counter: %w", err)
	}
	credits, err := meter.Int64Counter("conveyor.credits.calculated",
		metric.WithDescription("Credits priced by underwriting"))
	if err != nil {
		return nil, fmt.Errorf("create credits counter: %w", err)
	}
	refused, err := meter.Int64Counter("conveyor.credits.refused",
		metric.WithDescription("Underwriting refusals, by rule"))
	if err != nil {
		return nil, fmt.Errorf("create refusals counter: %w", err)
	}
	rates, err := meter.Float64Histogram("conveyor.credit.rate",
		metric.WithDescription("Final annual rate of calculated credits"),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(1, 5, 8, 10, 12, 15, 18, 22, 30))
	if err != nil {
		return nil, fmt.Errorf("create rate histogram: %w", err)
	}

	return &DecisionRecorder{offers: offers, credits: credits, refused: refused, rates: rates}, nil
}

func (r *DecisionRecorder) OffersCalculated(ctx context.Context, cached bool) {
	r.offers.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cached", cached)))
}

func (r *DecisionRecorder) CreditCalculated(ctx context.Context, rate decimal.Decimal) {
	r.credits.Add(ctx, 1)
	r.rates.Record(ctx, rate.InexactFloat64())
}

func (r *DecisionRecorder) CreditRefused(ctx context.Context, rule string) {
	r.refused.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", rule)))
}
