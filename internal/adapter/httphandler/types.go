package httphandler

import (
	"time"

	"github.com/ionecenter/marketplace/internal/core/domain"
)

type (
	Product struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Price       float64         `json:"price"`
		Rating      float64         `json:"rating,omitempty"`
		Category    string          `json:"category,omitempty"`
		Description string          `json:"description"`
		Images      []ProductImage  `json:"images,omitempty"`
		Specs       []ProductSpec   `json:"specs,omitempty"`
		Reviews     []ProductReview `json:"reviews,omitempty"`
		SellerID    string          `json:"seller_id,omitempty"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}

	ProductSpec struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	ProductReview struct {
		Author  string  `json:"author"`
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
		Date    string  `json:"date"`
	}
)

func productFromDomain(p domain.Product) Product {
	v := Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Rating:      p.Rating,
		Category:    p.Category,
		Description: p.Description,
		SellerID:    p.SellerID,
	}
	for _, img := range p.Images {
		v.Images = append(v.Images, ProductImage{URL: img.URL, Alt: img.Alt})
	}
	for _, s := range p.Specs {
		v.Specs = append(v.Specs, ProductSpec{Label: s.Label, Value: s.Value})
	}
	for _, r := range p.Reviews {
		v.Reviews = append(v.Reviews, ProductReview{
			Author: r.Author, Rating: r.Rating, Comment: r.Comment, Date: r.Date,
		})
	}
	return v
}

type (
	CartItem struct {
		ProductID string `json:"product_id"`
		Qty       int    `json:"qty"`
	}

	Cart struct {
		Items []CartItem `json:"items"`
		Total float64    `json:"total"`
	}

	AddCartItem struct {
		ProductID string `json:"product_id"`
		Qty       int    `json:"qty"`
	}

	UpdateCartItem struct {
		Qty int `json:"qty"`
	}
)

type (
	User struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}

	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	SignupRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	ProfileUpdate struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
)

func userFromDomain(u domain.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type (
	Preferences struct {
		Locale   string `json:"locale"`
		RTL      bool   `json:"rtl"`
		Currency string `json:"currency"`
	}

	SetLocale struct {
		Locale string `json:"locale"`
	}

	SetCurrency struct {
		Currency string `json:"currency"`
	}

	FormattedPrice struct {
		Amount    float64 `json:"amount"`
		Formatted string  `json:"formatted"`
	}
)

type (
	Order struct {
		ID        string      `json:"id"`
		BuyerID   string      `json:"buyer_id"`
		SellerID  string      `json:"seller_id"`
		Items     []OrderItem `json:"items"`
		Total     float64     `json:"total"`
		Status    string      `json:"status"`
		CreatedAt time.Time   `json:"created_at"`
	}

	OrderItem struct {
		ProductID string  `json:"product_id"`
		Name      string  `json:"name"`
		Qty       int     `json:"qty"`
		UnitPrice float64 `json:"unit_price"`
	}
)

func orderFromDomain(o domain.Order) Order {
	v := Order{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		SellerID:  o.SellerID,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
		})
	}
	return v
}

type UserActivity struct {
	UserID string `json:"user_id"`
	Events int64  `json:"events"`
}
