package catalog

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/dg-storefront/internal/infrastructure/store"
)

var (
	ErrBannerNotFound = errors.New("banner not found")
	ErrInvalidImage   = errors.New("image URL is required")
)

// CreateBanner adds a promotional banner.
func (s *Service) CreateBanner(ctx context.Context, title, imageURL, linkURL string, sortOrder int) (*store.BannerRecord, error) {
	if title == "" {
		return nil, ErrInvalidName
	}
	if imageURL == "" {
		return nil, ErrInvalidImage
	}

	now := time.Now()
	b := &store.BannerRecord{
		ID:        uuid.New().String(),
		Title:     title,
		ImageURL:  imageURL,
		LinkURL:   linkURL,
		SortOrder: sortOrder,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.records.Insert(ctx, store.CollectionBanners, b.ID, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBanner edits a banner, including toggling its active flag.
func (s *Service) UpdateBanner(ctx context.Context, id, title, imageURL, linkURL string, sortOrder int, isActive bool) error {
	if title == "" {
		return ErrInvalidName
	}
	if imageURL == "" {
		return ErrInvalidImage
	}

	updated, err := s.records.Update(ctx, store.CollectionBanners, id, func(current any) any {
		b := current.(*store.BannerRecord)
		b.Title = title
		b.ImageURL = imageURL
		b.LinkURL = linkURL
		b.SortOrder = sortOrder
		b.IsActive = isActive
		b.UpdatedAt = time.Now()
		return b
	})
	if err != nil {
		return err
	}
	if !updated {
		return ErrBannerNotFound
	}
	return nil
}

// DeleteBanner removes a banner.
func (s *Service) DeleteBanner(ctx context.Context, id string) error {
	_, found, err := s.records.Get(ctx, store.CollectionBanners, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrBannerNotFound
	}
	return s.records.Delete(ctx, store.CollectionBanners, id)
}

// ActiveBanners returns the banners shown on the storefront, in sort order.
func (s *Service) ActiveBanners(ctx context.Context) ([]*store.BannerRecord, error) {
	rows, err := s.records.Select(ctx, store.CollectionBanners, store.Filter{"is_active": true})
	if err != nil {
		return nil, err
	}
	banners := make([]*store.BannerRecord, 0, len(rows))
	for _, row := range rows {
		banners = append(banners, row.(*store.BannerRecord))
	}
	sort.Slice(banners, func(i, j int) bool { return banners[i].SortOrder < banners[j].SortOrder })
	return banners, nil
}

// ListBanners returns every banner, active or not. Admin only.
func (s *Service) ListBanners(ctx context.Context) ([]*store.BannerRecord, error) {
	rows, err := s.records.GetAll(ctx, store.CollectionBanners)
	if err != nil {
		return nil, err
	}
	banners := make([]*store.BannerRecord, 0, len(rows))
	for _, row := range rows {
		banners = append(banners, row.(*store.BannerRecord))
	}
	sort.Slice(banners, func(i, j int) bool { return banners[i].SortOrder < banners[j].SortOrder })
	return banners, nil
}
