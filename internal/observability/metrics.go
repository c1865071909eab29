package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	propertyViews = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_property_views_total",
		Help: "Property detail views served.",
	})

	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_calculations_total",
			Help: "Yield calculator requests by outcome (ok|invalid).",
		},
		[]string{"result"},
	)

	investments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_investments_total",
			Help: "Investments handled by outcome (created|replayed).",
		},
		[]string{"result"},
	)

	searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_searches_total",
			Help: "Free-text searches by outcome (hit|miss).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(propertyViews, calculations, investments, searches)
}

// PropertyViewed counts one detail view.
func PropertyViewed() { propertyViews.Inc() }

// CalculationDone counts one calculator request.
func CalculationDone(ok bool) {
	if ok {
		calculations.WithLabelValues("ok").Inc()
		return
	}
	calculations.WithLabelValues("invalid").Inc()
}

// InvestmentCreated counts a new investment.
func InvestmentCreated() { investments.WithLabelValues("created").Inc() }

// InvestmentReplayed counts an idempotent replay of an earlier investment.
func InvestmentReplayed() { investments.WithLabelValues("replayed").Inc() }

// SearchDone counts a search that returned hits results.
func SearchDone(hits int) {
	if hits > 0 {
		searches.WithLabelValues("hit").Inc()
		return
	}
	searches.WithLabelValues("miss").Inc()
}
