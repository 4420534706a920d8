package domain

type (
	// Product is read-only reference data owned by the catalog.
	// Prices are denominated in USD.
	Product struct {
		ID          string
		Name        string
		Price       float64
		Rating      float64
		Category    string
		Description string
		Images      []ProductImage
		Specs       []ProductSpec
		Reviews     []ProductReview
		SellerID    string
	}

	ProductImage struct {
		URL string
		Alt string
	}

	ProductSpec struct {
		Label string
		Value string
	}

	ProductReview struct {
		Author  string
		Rating  float64
		Comment string
		Date    string
	}
)
