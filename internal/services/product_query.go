package services

import (
	"strconv"
	"strings"

	"katalog/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ProductQuery holds the listing options for products. Empty Category or
// Search means the filter is not applied.
type ProductQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// NewProductQuery builds a ProductQuery from raw query-string values.
// page and limit that are not positive integers fall back to their defaults.
func NewProductQuery(category, search, page, limit string) ProductQuery {
	return ProductQuery{
		Category: category,
		Search:   search,
		Page:     positiveIntOr(page, DefaultPage),
		Limit:    positiveIntOr(limit, DefaultLimit),
	}
}

func positiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// ApplyQuery filters by category, then by name search, and slices out the
// requested page. Out-of-range pages yield an empty Data slice.
func ApplyQuery(products []models.Product, q ProductQuery) models.ProductPage {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}

	filtered := make([]models.Product, 0, len(products))
	search := strings.ToLower(q.Search)
	for _, p := range products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	// Page bounds are compared before multiplying so huge page values cannot overflow.
	data := []models.Product{}
	pages := len(filtered) / q.Limit
	if len(filtered)%q.Limit != 0 {
		pages++
	}
	if q.Page <= pages {
		start := (q.Page - 1) * q.Limit
		end := len(filtered)
		if q.Limit < end-start {
			end = start + q.Limit
		}
		data = append(data, filtered[start:end]...)
	}

	return models.ProductPage{
		Total: len(filtered),
		Page:  q.Page,
		Limit: q.Limit,
		Data:  data,
	}
}
