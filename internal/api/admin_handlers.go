package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/dg-storefront/internal/catalog"
	"github.com/example/dg-storefront/internal/order"
	"github.com/example/dg-storefront/internal/user"
)

// AdminHandlers serves the back-office endpoints: catalog management, order
// fulfilment and payment proof review, and account administration.
type AdminHandlers struct {
	catalogService *catalog.Service
	orderService   *order.Service
	userService    *user.Service
}

func NewAdminHandlers(catalogService *catalog.Service, orderService *order.Service, userService *user.Service) *AdminHandlers {
	return &AdminHandlers{
		catalogService: catalogService,
		orderService:   orderService,
		userService:    userService,
	}
}

// Product management

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ProductType string   `json:"product_type"`
	Price       int      `json:"price"`
	ImageURL    string   `json:"image_url"`
	CategoryIDs []string `json:"category_ids"`
}

func (h *AdminHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), req.Name, req.Description, req.ProductType, req.Price, req.ImageURL, req.CategoryIDs)
	if err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *AdminHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/admin/products/")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalogService.UpdateProduct(r.Context(), id, req.Name, req.Description, req.ProductType, req.Price, req.ImageURL, req.CategoryIDs); err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *AdminHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/admin/products/")

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// Category management

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
	SortOrder   int    `json:"sort_order"`
}

func (h *AdminHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name, req.Slug, req.Description, req.ParentID, req.SortOrder)
	if err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

func (h *AdminHandlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/admin/categories/")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalogService.UpdateCategory(r.Context(), id, req.Name, req.Slug, req.Description, req.ParentID, req.SortOrder); err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Category updated"})
}

func (h *AdminHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/admin/categories/")

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// Banner management

type bannerRequest struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

func (h *AdminHandlers) GetBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.catalogService.ListBanners(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, banners)
}

func (h *AdminHandlers) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	banner, err := h.catalogService.CreateBanner(r.Context(), req.Title, req.ImageURL, req.LinkURL, req.SortOrder)
	if err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, banner)
}

func (h *AdminHandlers) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/admin/banners/")

	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalogService.UpdateBanner(r.Context(), id, req.Title, req.ImageURL, req.LinkURL, req.SortOrder, req.IsActive); err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Banner updated"})
}

func (h *AdminHandlers) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/admin/banners/")

	if err := h.catalogService.DeleteBanner(r.Context(), id); err != nil {
		respondCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Banner deleted"})
}

// Order management

func (h *AdminHandlers) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := trimOrderPath(r.URL.Path)

	view, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		respondOrderError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// UpdateOrderStatus moves an order through the fulfilment state machine
func (h *AdminHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := trimOrderPath(r.URL.Path)

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orderService.UpdateStatus(r.Context(), id, order.Status(req.Status)); err != nil {
		respondOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}

// ReviewProof approves or rejects a submitted payment proof
func (h *AdminHandlers) ReviewProof(w http.ResponseWriter, r *http.Request) {
	id := trimOrderPath(r.URL.Path)

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orderService.ReviewProof(r.Context(), id, req.Approved); err != nil {
		respondOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Payment proof reviewed"})
}

// User management

func (h *AdminHandlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *AdminHandlers) SetUserActive(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/admin/users/")
	id = strings.TrimSuffix(id, "/active")

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondJSONError(w, "User not found", http.StatusNotFound)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User updated"})
}

// Path helpers

// trimOrderPath extracts the order id from /admin/orders/{id}[/action]
func trimOrderPath(path string) string {
	id := strings.TrimPrefix(path, "/admin/orders/")
	id = strings.TrimSuffix(id, "/status")
	id = strings.TrimSuffix(id, "/verify-proof")
	return id
}

// Error mapping helpers

func respondCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, catalog.ErrBannerNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrInvalidName),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidSlug),
		errors.Is(err, catalog.ErrInvalidImage):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrProofNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPaymentStatus),
		errors.Is(err, order.ErrOrderCompleted),
		errors.Is(err, order.ErrOrderCancelled):
		respondJSONError(w, err.Error(), http.StatusConflict)
	default:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}
