package catalog

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/dg-storefront/internal/infrastructure/store"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidSlug      = errors.New("invalid slug format")
)

// slugRegex validates slug format (lowercase letters, numbers, hyphens)
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreateCategory adds a product category. An empty slug is generated from
// the name.
func (s *Service) CreateCategory(ctx context.Context, name, slug, description, parentID string, sortOrder int) (*store.CategoryRecord, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if slug == "" {
		slug = generateSlug(name)
	}
	if !slugRegex.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	now := time.Now()
	c := &store.CategoryRecord{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug,
		Description: description,
		ParentID:    parentID,
		SortOrder:   sortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.records.Insert(ctx, store.CollectionCategories, c.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory edits a category.
func (s *Service) UpdateCategory(ctx context.Context, id, name, slug, description, parentID string, sortOrder int) error {
	if name == "" {
		return ErrInvalidName
	}
	if slug == "" {
		slug = generateSlug(name)
	}
	if !slugRegex.MatchString(slug) {
		return ErrInvalidSlug
	}

	updated, err := s.records.Update(ctx, store.CollectionCategories, id, func(current any) any {
		c := current.(*store.CategoryRecord)
		c.Name = name
		c.Slug = slug
		c.Description = description
		c.ParentID = parentID
		c.SortOrder = sortOrder
		c.UpdatedAt = time.Now()
		return c
	})
	if err != nil {
		return err
	}
	if !updated {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	_, found, err := s.records.Get(ctx, store.CollectionCategories, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrCategoryNotFound
	}
	return s.records.Delete(ctx, store.CollectionCategories, id)
}

// ListCategories returns all categories in sort order.
func (s *Service) ListCategories(ctx context.Context) ([]*store.CategoryRecord, error) {
	rows, err := s.records.GetAll(ctx, store.CollectionCategories)
	if err != nil {
		return nil, err
	}
	categories := make([]*store.CategoryRecord, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.(*store.CategoryRecord))
	}
	return categories, nil
}

// generateSlug derives a URL-safe slug from a category name
func generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
