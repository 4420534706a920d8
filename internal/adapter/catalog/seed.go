package catalog

import "github.com/ionecenter/marketplace/internal/core/domain"

// SeedProducts returns the built-in demo catalog.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			Name:        "Wireless Headphones",
			Price:       89.99,
			Rating:      4.4,
			Category:    "Electronics",
			Description: "Comfortable over-ear wireless headphones with noise cancellation.",
			Images: []domain.ProductImage{
				{URL: "https://picsum.photos/seed/p1/600/400", Alt: "Wireless Headphones"},
			},
			SellerID: "seller-demo",
		},
		{
			ID:          "p2",
			Name:        "Smartwatch Pro",
			Price:       149.99,
			Rating:      4.1,
			Category:    "Electronics",
			Description: "Feature-rich smartwatch with fitness tracking and notifications.",
			Images: []domain.ProductImage{
				{URL: "https://picsum.photos/seed/p2/600/400", Alt: "Smartwatch Pro"},
			},
			SellerID: "seller-demo",
		},
		{
			ID:          "p3",
			Name:        "Portable Speaker",
			Price:       39.99,
			Rating:      4.0,
			Category:    "Electronics",
			Description: "Compact Bluetooth speaker with clear sound and long battery life.",
			Images: []domain.ProductImage{
				{URL: "https://picsum.photos/seed/p3/600/400", Alt: "Portable Speaker"},
			},
			SellerID: "seller-demo",
		},
	}
}
