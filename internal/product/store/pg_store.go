package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	perrors "github.com/HumayunBA/QA-API-Testing/internal/product/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectAllSQL        = `SELECT id, name, description, price, quantity, category FROM products ORDER BY id`
	selectByNameLikeSQL = `SELECT id, name, description, price, quantity, category FROM products WHERE name ILIKE $1 ESCAPE '\' ORDER BY id`
	selectByIDSQL       = `SELECT id, name, description, price, quantity, category FROM products WHERE id = $1`
	insertSQL           = `INSERT INTO products (name, description, price, quantity, category) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	insertWithIDSQL     = `INSERT INTO products (id, name, description, price, quantity, category) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	updateSQL           = `UPDATE products SET name = $1, description = $2, price = $3, quantity = $4, category = $5 WHERE id = $6`
	deleteByIDSQL       = `DELETE FROM products WHERE id = $1`
	deleteAllSQL        = `DELETE FROM products`
)

// PostgreSQL error codes mapped to store errors.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db     *pgxpool.Pool
	idMode IDMode
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool, idMode IDMode) *PgStore {
	return &PgStore{
		db:     dbp,
		idMode: idMode,
	}
}

// FindAll retrieves all products.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	products, err := p.query(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return products, nil
}

// FindByNameLike retrieves the products whose name contains fragment, ignoring case.
// Pattern characters in fragment match literally.
func (p *PgStore) FindByNameLike(ctx context.Context, fragment string) ([]Product, error) {
	products, err := p.query(ctx, selectByNameLikeSQL, "%"+escapeLike(fragment)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if the row set is empty.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	products, err := p.query(ctx, selectByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if len(products) == 0 {
		return nil, perrors.ErrProductNotFound
	}
	return &products[0], nil
}

// Create inserts a product and returns the id reported by the database.
func (p *PgStore) Create(ctx context.Context, params CreateParams) (int64, error) {
	var row pgx.Row
	if p.idMode == IDModeClient {
		row = p.db.QueryRow(ctx, insertWithIDSQL,
			params.ID, params.Name, params.Description, params.Price.String(), params.Quantity, params.Category)
	} else {
		row = p.db.QueryRow(ctx, insertSQL,
			params.Name, params.Description, params.Price.String(), params.Quantity, params.Category)
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create product: %w", mapPgError(err))
	}
	return id, nil
}

// Update replaces all mutable columns of a product.
// Returns ErrProductNotFound if no row was affected.
func (p *PgStore) Update(ctx context.Context, id int64, params UpdateParams) error {
	var price any
	if params.Price.Valid {
		price = params.Price.Decimal.String()
	}
	tag, err := p.db.Exec(ctx, updateSQL,
		params.Name, params.Description, price, params.Quantity, params.Category, id)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no row was affected.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, deleteByIDSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// DeleteAll removes every product.
func (p *PgStore) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, deleteAllSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to delete all products: %w", err)
	}
	return tag.RowsAffected(), nil
}

// IDMode reports how ids are assigned on Create.
func (p *PgStore) IDMode() IDMode {
	return p.idMode
}

// Ping checks the database connection.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *PgStore) query(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Product])
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes the LIKE wildcards so the fragment is matched as plain text.
func escapeLike(fragment string) string {
	return likeEscaper.Replace(fragment)
}

// mapPgError translates constraint violations into store errors, keeping the cause.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", perrors.ErrDuplicateID, pgErr.Detail)
	case pgNotNullViolation:
		return fmt.Errorf("%w: %s", perrors.ErrNullValue, pgErr.ColumnName)
	default:
		return err
	}
}
