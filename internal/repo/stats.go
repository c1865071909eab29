// Package repo implements the catalog persistence layer. This file holds the
// portfolio aggregation shared by every Store implementation.
package repo

import (
	"github.com/shopspring/decimal"

	"github.com/tbourn/go-property-backend/internal/domain"
)

// PortfolioYield is the average annual yield (percent) reported for any
// non-empty portfolio.
const PortfolioYield = 11.2

// portfolioStats summarizes count investments totalling total UF.
// monthlyIncome = round2(total * yield / 100 / 12).
func portfolioStats(total int64, count int) domain.PortfolioStats {
	if count == 0 {
		return domain.PortfolioStats{}
	}
	yield := decimal.NewFromFloat(PortfolioYield)
	monthly := decimal.NewFromInt(total).
		Mul(yield).
		Div(decimal.NewFromInt(100 * 12)).
		Round(2)
	return domain.PortfolioStats{
		TotalValue:      total,
		PropertiesCount: count,
		MonthlyIncome:   monthly.InexactFloat64(),
		AverageYield:    PortfolioYield,
	}
}
