package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/dg-storefront/internal/infrastructure/store"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidName     = errors.New("name is required")
)

// Service manages the storefront catalog: products, categories and banners.
type Service struct {
	records store.RecordStore
}

func NewService(records store.RecordStore) *Service {
	return &Service{records: records}
}

// CreateProduct adds a digital product to the catalog.
func (s *Service) CreateProduct(ctx context.Context, name, description, productType string, price int, imageURL string, categoryIDs []string) (*store.ProductRecord, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	p := &store.ProductRecord{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		ProductType: productType,
		Price:       price,
		ImageURL:    imageURL,
		CategoryIDs: categoryIDs,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.records.Insert(ctx, store.CollectionProducts, p.ID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct edits a product's mutable fields.
func (s *Service) UpdateProduct(ctx context.Context, id, name, description, productType string, price int, imageURL string, categoryIDs []string) error {
	if name == "" {
		return ErrInvalidName
	}
	if price <= 0 {
		return ErrInvalidPrice
	}

	updated, err := s.records.Update(ctx, store.CollectionProducts, id, func(current any) any {
		p := current.(*store.ProductRecord)
		p.Name = name
		p.Description = description
		p.ProductType = productType
		p.Price = price
		p.ImageURL = imageURL
		p.CategoryIDs = categoryIDs
		p.UpdatedAt = time.Now()
		return p
	})
	if err != nil {
		return err
	}
	if !updated {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product from the catalog. Orders keep their
// denormalized snapshots, so history is unaffected.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	_, found, err := s.records.Get(ctx, store.CollectionProducts, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrProductNotFound
	}
	return s.records.Delete(ctx, store.CollectionProducts, id)
}

// GetProduct returns a product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (*store.ProductRecord, error) {
	raw, found, err := s.records.Get(ctx, store.CollectionProducts, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProductNotFound
	}
	return raw.(*store.ProductRecord), nil
}

// ListProducts returns the catalog, optionally scoped to one category.
func (s *Service) ListProducts(ctx context.Context, categoryID string) ([]*store.ProductRecord, error) {
	var filter store.Filter
	if categoryID != "" {
		filter = store.Filter{"category_id": categoryID}
	}
	rows, err := s.records.Select(ctx, store.CollectionProducts, filter)
	if err != nil {
		return nil, err
	}
	products := make([]*store.ProductRecord, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.(*store.ProductRecord))
	}
	return products, nil
}
