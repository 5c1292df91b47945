package services

import (
	"katalog/internal/models"

	"github.com/shopspring/decimal"
)

// ComputeStats aggregates a snapshot of products. The average price of an
// empty snapshot is 0.
func ComputeStats(products []models.Product) models.ProductStats {
	stats := models.ProductStats{TotalProducts: len(products)}

	sum := decimal.Zero
	for _, p := range products {
		stats.Categories.Add(p.Category)
		if p.InStock {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
		sum = sum.Add(decimal.NewFromFloat(p.Price))
	}

	if len(products) > 0 {
		stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(products)))).InexactFloat64()
	}
	return stats
}
