// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/HumayunBA/QA-API-Testing/internal/product/store"
	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, the way clients send them
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns all products, keeping only those whose name contains nameFilter when it is not empty.
	FindAll(ctx context.Context, nameFilter string) ([]ProductDto, error)

	// FindByNameLike returns the products whose name contains fragment.
	FindByNameLike(ctx context.Context, fragment string) ([]ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Create adds a new product and returns its id.
	Create(ctx context.Context, product ProductCreateDto) (int64, error)

	// Update replaces the mutable fields of a product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductUpdateDto) error

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteAll removes every product and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// IDMode reports whether callers must supply ids on Create.
	IDMode() store.IDMode

	// Ping checks that the product store is reachable.
	Ping(ctx context.Context) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Category    string          `json:"category"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Every field must be present and non-zero. ID is only checked when callers supply ids.
type ProductCreateDto struct {
	ID          int64           `json:"id"          validate:"required"`
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	Quantity    int64           `json:"quantity"    validate:"required"`
	Category    string          `json:"category"    validate:"required"`
}

// ProductUpdateDto carries the replacement values of a product. Absent fields stay nil.
type ProductUpdateDto struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	Quantity    *int64              `json:"quantity"`
	Category    *string             `json:"category"`
}

// FindAll retrieves all products and applies the optional name filter in memory.
func (s *Service) FindAll(ctx context.Context, nameFilter string) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, 0, len(products))
	for i := range products {
		if nameFilter != "" && !strings.Contains(products[i].Name, nameFilter) {
			continue
		}
		productDTOs = append(productDTOs, *toDto(&products[i]))
	}
	return productDTOs, nil
}

// FindByNameLike retrieves products whose name contains fragment.
func (s *Service) FindByNameLike(ctx context.Context, fragment string) ([]ProductDto, error) {
	products, err := s.repository.FindByNameLike(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products matching %q: %w", fragment, err)
	}
	return toDtos(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// Create stores a new product. The supplied ID is forwarded only when the store expects client ids.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (int64, error) {
	params := store.CreateParams{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
	}
	if s.repository.IDMode() == store.IDModeClient {
		params.ID = product.ID
	}
	id, err := s.repository.Create(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// Update replaces a product's mutable fields.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductUpdateDto) error {
	err := s.repository.Update(ctx, id, store.UpdateParams{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return nil
}

// DeleteAll deletes every product.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repository.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}
	return count, nil
}

// IDMode reports how the store assigns ids.
func (s *Service) IDMode() store.IDMode {
	return s.repository.IDMode()
}

// Ping checks the store connection.
func (s *Service) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}

func toDtos(products []store.Product) []ProductDto {
	productDTOs := make([]ProductDto, len(products))
	for i := range products {
		productDTOs[i] = *toDto(&products[i])
	}
	return productDTOs
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
	}
}
