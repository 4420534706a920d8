// Package catalog serves the read-only product catalog. Products live
// in PostgreSQL; when the database is unconfigured or unavailable the
// built-in seed products are served instead, so the rest of the system
// never sees a catalog failure it has to handle.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

var _ port.ProductCatalog = (*Catalog)(nil)

type Catalog struct {
	repo *SQLCatalog
}

// New wraps an optional SQL repository; pass nil to serve seed data
// only.
func New(repo *SQLCatalog) Catalog {
	return Catalog{repo}
}

func (c Catalog) Product(ctx context.Context, id string) (domain.Product, error) {
	const op = "Catalog.Product"

	if c.repo != nil {
		p, err := c.repo.ReadProduct(ctx, id)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Product{}, err
		}
		slog.Warn("catalog query failed, serving seed data",
			"op", op, "err", err)
	}

	for _, p := range SeedProducts() {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (c Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "Catalog.Products"

	if c.repo != nil {
		ps, err := c.repo.ReadProducts(ctx)
		if err == nil {
			return ps, nil
		}
		slog.Warn("catalog query failed, serving seed data",
			"op", op, "err", err)
	}
	return SeedProducts(), nil
}
