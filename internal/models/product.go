package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Product represents a sellable item in the catalog.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Category    string  `json:"category" gorm:"not null;index"`
	InStock     bool    `json:"inStock"`
	CreatedAt   int64   `json:"-" gorm:"autoCreateTime:nano"` // Keeps insertion order for GORM-backed listing
}

// ProductInput holds the business fields of a product after validation.
// Create and update both take a full ProductInput; partial updates are not supported.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

// Apply overwrites every business field of p with the input values. The ID is left untouched.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.InStock = in.InStock
}

// ProductPage is the result of a filtered, paginated listing.
type ProductPage struct {
	Total int       `json:"total"` // Count after filtering, before pagination
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Data  []Product `json:"data"`
}

// ProductStats summarises a snapshot of the catalog.
type ProductStats struct {
	TotalProducts int            `json:"totalProducts"`
	Categories    CategoryCounts `json:"categories"`
	InStock       int            `json:"inStock"`
	OutOfStock    int            `json:"outOfStock"`
	AveragePrice  float64        `json:"averagePrice"`
}

// CategoryCounts is a category histogram that remembers first-seen order.
// Categories are matched case-insensitively; the first spelling seen is the one reported.
type CategoryCounts struct {
	names  []string
	counts map[string]int
}

// Add increments the count of the given category.
func (c *CategoryCounts) Add(category string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	key := strings.ToLower(category)
	if _, ok := c.counts[key]; !ok {
		c.names = append(c.names, category)
	}
	c.counts[key]++
}

// Names returns the categories in first-seen order.
func (c CategoryCounts) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Count returns how many products belong to category.
func (c CategoryCounts) Count(category string) int {
	return c.counts[strings.ToLower(category)]
}

// Len returns the number of distinct categories.
func (c CategoryCounts) Len() int {
	return len(c.names)
}

// MarshalJSON encodes the histogram as a JSON object whose keys keep first-seen order.
func (c CategoryCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(c.Count(name))
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
