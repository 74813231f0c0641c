package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/HumayunBA/QA-API-Testing/internal/product/errors"
)

// InMemoryStore implements ProductStore using an in-memory map.
// It is owned by the process that creates it; nothing is persisted.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
	idMode   IDMode
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore(idMode IDMode) *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]Product),
		nextID:   1,
		idMode:   idMode,
	}
}

// FindAll retrieves all products.
func (s *InMemoryStore) FindAll(ctx context.Context) ([]Product, error) {
	return s.collect(ctx, func(Product) bool { return true })
}

// FindByNameLike retrieves the products whose name contains fragment, ignoring case.
func (s *InMemoryStore) FindByNameLike(ctx context.Context, fragment string) ([]Product, error) {
	needle := strings.ToLower(fragment)
	return s.collect(ctx, func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	})
}

// FindByID retrieves a product by its ID.
func (s *InMemoryStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &p, nil
}

// Create stores a new product and returns its id.
func (s *InMemoryStore) Create(ctx context.Context, params CreateParams) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	if s.idMode == IDModeClient {
		id = params.ID
		if _, exists := s.products[id]; exists {
			return 0, fmt.Errorf("failed to create product: %w: id %d", errors.ErrDuplicateID, id)
		}
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}

	s.products[id] = Product{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Quantity:    params.Quantity,
		Category:    params.Category,
	}
	return id, nil
}

// Update replaces the mutable fields of a product. NULL bindings are rejected like a NOT NULL column would.
func (s *InMemoryStore) Update(ctx context.Context, id int64, params UpdateParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return errors.ErrProductNotFound
	}
	if params.Name == nil || params.Description == nil || !params.Price.Valid ||
		params.Quantity == nil || params.Category == nil {
		return fmt.Errorf("failed to update product: %w", errors.ErrNullValue)
	}
	s.products[id] = Product{
		ID:          id,
		Name:        *params.Name,
		Description: *params.Description,
		Price:       params.Price.Decimal,
		Quantity:    *params.Quantity,
		Category:    *params.Category,
	}
	return nil
}

// DeleteByID deletes a product by its ID.
func (s *InMemoryStore) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return errors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// DeleteAll deletes every product.
func (s *InMemoryStore) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	count := int64(len(s.products))
	clear(s.products)
	return count, nil
}

// IDMode reports how ids are assigned on Create.
func (s *InMemoryStore) IDMode() IDMode {
	return s.idMode
}

// Ping always succeeds unless ctx is done.
func (s *InMemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *InMemoryStore) collect(ctx context.Context, keep func(Product) bool) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
