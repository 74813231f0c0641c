// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// IDMode tells who assigns product ids on creation.
type IDMode string

const (
	// IDModeServer lets the store assign ids; a caller supplied id is ignored.
	IDModeServer IDMode = "server"
	// IDModeClient requires the caller to supply the id.
	IDModeClient IDMode = "client"
)

// Product represents a product row.
type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Quantity    int64           `db:"quantity"`
	Category    string          `db:"category"`
}

// CreateParams holds the column values of a new product. ID is only used in IDModeClient.
type CreateParams struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int64
	Category    string
}

// UpdateParams holds the replacement column values. A nil field is bound as NULL.
type UpdateParams struct {
	Name        *string
	Description *string
	Price       decimal.NullDecimal
	Quantity    *int64
	Category    *string
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
// Every method issues exactly one statement.
type ProductStore interface {
	// FindAll returns all products ordered by id.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByNameLike returns the products whose name contains fragment, ignoring case.
	FindByNameLike(ctx context.Context, fragment string) ([]Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create inserts a new product and returns its id.
	Create(ctx context.Context, params CreateParams) (int64, error)

	// Update replaces every mutable column of a product.
	// Returns ErrProductNotFound if no row was affected.
	Update(ctx context.Context, id int64, params UpdateParams) error

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no row was affected.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteAll removes every product and returns the number of deleted rows.
	DeleteAll(ctx context.Context) (int64, error)

	// IDMode reports how ids are assigned on Create.
	IDMode() IDMode

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
