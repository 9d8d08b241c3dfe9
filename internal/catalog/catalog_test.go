package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dg-storefront/internal/infrastructure/store"
	"github.com/example/dg-storefront/internal/infrastructure/store/mocks"
)

func newTestCatalogService() (*Service, *mocks.MockRecordStore) {
	records := mocks.NewMockRecordStore()
	return NewService(records), records
}

// ============================================
// Product Tests
// ============================================

func TestService_CreateProduct_Success(t *testing.T) {
	service, records := newTestCatalogService()
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, "Netflix Premium", "4K streaming", "subscription", 1500, "/img/netflix.png", []string{"cat-1"})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Netflix Premium", product.Name)
	assert.Equal(t, 1500, product.Price)
	assert.True(t, product.IsActive)
	assert.Equal(t, 1, records.CountData(store.CollectionProducts))
}

func TestService_CreateProduct_Invalid(t *testing.T) {
	service, records := newTestCatalogService()
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, "", "", "subscription", 1500, "", nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = service.CreateProduct(ctx, "Netflix", "", "subscription", 0, "", nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = service.CreateProduct(ctx, "Netflix", "", "subscription", -5, "", nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	assert.Zero(t, records.CountData(store.CollectionProducts))
}

func TestService_UpdateProduct_Success(t *testing.T) {
	service, _ := newTestCatalogService()
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, "Netflix Premium", "desc", "subscription", 1500, "", nil)
	require.NoError(t, err)

	err = service.UpdateProduct(ctx, product.ID, "Netflix Premium 4K", "desc", "subscription", 1800, "", []string{"cat-2"})
	require.NoError(t, err)

	got, err := service.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Netflix Premium 4K", got.Name)
	assert.Equal(t, 1800, got.Price)
	assert.Equal(t, []string{"cat-2"}, got.CategoryIDs)
}

func TestService_UpdateProduct_NotFound(t *testing.T) {
	service, _ := newTestCatalogService()

	err := service.UpdateProduct(context.Background(), "nope", "Name", "", "", 100, "", nil)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_DeleteProduct(t *testing.T) {
	service, records := newTestCatalogService()
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, "Netflix Premium", "", "subscription", 1500, "", nil)
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(ctx, product.ID))
	assert.Zero(t, records.CountData(store.CollectionProducts))

	assert.ErrorIs(t, service.DeleteProduct(ctx, product.ID), ErrProductNotFound)
}

func TestService_ListProducts_ByCategory(t *testing.T) {
	service, _ := newTestCatalogService()
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, "Netflix", "", "subscription", 1500, "", []string{"cat-streaming"})
	require.NoError(t, err)
	_, err = service.CreateProduct(ctx, "Canva Pro", "", "subscription", 1000, "", []string{"cat-design"})
	require.NoError(t, err)

	all, err := service.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	streaming, err := service.ListProducts(ctx, "cat-streaming")
	require.NoError(t, err)
	require.Len(t, streaming, 1)
	assert.Equal(t, "Netflix", streaming[0].Name)
}

// ============================================
// Category Tests
// ============================================

func TestService_CreateCategory_GeneratesSlug(t *testing.T) {
	service, _ := newTestCatalogService()

	category, err := service.CreateCategory(context.Background(), "Streaming & TV", "", "", "", 1)

	require.NoError(t, err)
	assert.Equal(t, "streaming-tv", category.Slug)
	assert.True(t, category.IsActive)
}

func TestService_CreateCategory_ExplicitSlug(t *testing.T) {
	service, _ := newTestCatalogService()

	category, err := service.CreateCategory(context.Background(), "Streaming", "video-streaming", "", "", 1)

	require.NoError(t, err)
	assert.Equal(t, "video-streaming", category.Slug)
}

func TestService_CreateCategory_InvalidSlug(t *testing.T) {
	service, _ := newTestCatalogService()

	_, err := service.CreateCategory(context.Background(), "Streaming", "Not A Slug!", "", "", 1)

	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestService_UpdateCategory_NotFound(t *testing.T) {
	service, _ := newTestCatalogService()

	err := service.UpdateCategory(context.Background(), "nope", "Name", "name", "", "", 0)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestService_ListCategories(t *testing.T) {
	service, _ := newTestCatalogService()
	ctx := context.Background()

	_, err := service.CreateCategory(ctx, "Streaming", "", "", "", 1)
	require.NoError(t, err)
	_, err = service.CreateCategory(ctx, "Design", "", "", "", 2)
	require.NoError(t, err)

	categories, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Streaming", "streaming"},
		{"Streaming & TV", "streaming-tv"},
		{"  VPN  Services  ", "vpn-services"},
		{"Gift Cards!", "gift-cards"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateSlug(tt.name))
		})
	}
}

// ============================================
// Banner Tests
// ============================================

func TestService_CreateBanner_Success(t *testing.T) {
	service, _ := newTestCatalogService()

	banner, err := service.CreateBanner(context.Background(), "Dashain Sale", "/img/sale.png", "/sale", 1)

	require.NoError(t, err)
	assert.True(t, banner.IsActive)
	assert.Equal(t, "Dashain Sale", banner.Title)
}

func TestService_CreateBanner_RequiresImage(t *testing.T) {
	service, _ := newTestCatalogService()

	_, err := service.CreateBanner(context.Background(), "Dashain Sale", "", "", 1)

	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestService_ActiveBanners_FiltersAndSorts(t *testing.T) {
	service, _ := newTestCatalogService()
	ctx := context.Background()

	second, err := service.CreateBanner(ctx, "Second", "/img/2.png", "", 2)
	require.NoError(t, err)
	first, err := service.CreateBanner(ctx, "First", "/img/1.png", "", 1)
	require.NoError(t, err)
	hidden, err := service.CreateBanner(ctx, "Hidden", "/img/3.png", "", 0)
	require.NoError(t, err)
	require.NoError(t, service.UpdateBanner(ctx, hidden.ID, "Hidden", "/img/3.png", "", 0, false))

	banners, err := service.ActiveBanners(ctx)

	require.NoError(t, err)
	require.Len(t, banners, 2)
	assert.Equal(t, first.ID, banners[0].ID)
	assert.Equal(t, second.ID, banners[1].ID)
}

func TestService_DeleteBanner_NotFound(t *testing.T) {
	service, _ := newTestCatalogService()

	err := service.DeleteBanner(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrBannerNotFound)
}
