package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ionecenter/marketplace/internal/core/domain"
)

type sqldb interface {
	PingContext(ctx context.Context) error
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Close() error
}

// SQLCatalog reads products from PostgreSQL.
type SQLCatalog struct {
	sqldb sqldb
}

func NewSQLCatalog(ctx context.Context, dsn string) (*SQLCatalog, error) {
	const op = "NewSQLCatalog"

	connConfig, _ := pgx.ParseConfig(dsn)
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)

	c := &SQLCatalog{db}
	if err := c.sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%s: database unavailable: %w", op, err)
	}
	slog.Info("catalog database is available", "op", op)
	return c, nil
}

const productColumns = `
	product_id, name, price, rating, category,
	description, images, specs, reviews, seller_id`

func (c *SQLCatalog) ReadProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "SQLCatalog.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + `
		FROM products WHERE product_id = $1;`

	row := c.sqldb.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (c *SQLCatalog) ReadProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "SQLCatalog.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + `
		FROM products ORDER BY product_id ASC;`

	rows, err := c.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (c *SQLCatalog) Close() {
	const op = "SQLCatalog.Close"
	log := slog.With("op", op)

	log.Info("closing catalog database...")
	if err := c.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("catalog database is closed")
}

// scanProduct reads one row. The images, specs and reviews columns are
// JSON.
func scanProduct(scan func(...any) error) (domain.Product, error) {
	var (
		p       domain.Product
		images  []byte
		specs   []byte
		reviews []byte
	)
	err := scan(
		&p.ID, &p.Name, &p.Price, &p.Rating, &p.Category,
		&p.Description, &images, &specs, &reviews, &p.SellerID,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if err := json.Unmarshal(images, &p.Images); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal(specs, &p.Specs); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal(reviews, &p.Reviews); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
