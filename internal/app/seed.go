package app

import (
	"fmt"
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// SeedProducts populates the repository with the initial catalog.
func SeedProducts(repo repositories.ProductRepository) error {
	products := []models.Product{
		{Name: "Laptop", Description: "High-performance laptop", Price: 999.99, Category: "Electronics", InStock: true},
		{Name: "Coffee Maker", Description: "Automatic drip coffee maker", Price: 49.99, Category: "Appliances", InStock: false},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
		log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
	}
	return nil
}
