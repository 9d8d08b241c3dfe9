package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/example/dg-storefront/internal/api/middleware"
	"github.com/example/dg-storefront/internal/auth"
	"github.com/example/dg-storefront/internal/infrastructure/metrics"
)

func NewRouter(
	handlers *Handlers,
	authHandlers *AuthHandlers,
	checkoutHandlers *CheckoutHandlers,
	adminHandlers *AdminHandlers,
	jwtService *auth.JWTService,
	serverMetrics *metrics.ServerMetrics,
) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.AuthMiddleware(jwtService)
	requireAdmin := func(next http.Handler) http.Handler {
		return requireAuth(middleware.RequireRole("admin")(next))
	}

	// handle wraps a handler with metrics instrumentation and optional
	// middleware, innermost last.
	handle := func(pattern, name string, h http.HandlerFunc, wrappers ...func(http.Handler) http.Handler) {
		var wrapped http.Handler = h
		for i := len(wrappers) - 1; i >= 0; i-- {
			wrapped = wrappers[i](wrapped)
		}
		mux.Handle(pattern, middleware.Metrics(serverMetrics, name)(wrapped))
	}

	// Health and metrics
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", metrics.Handler())

	// Auth
	handle("/auth/register", "auth_register", methodOnly(http.MethodPost, authHandlers.Register))
	handle("/auth/login", "auth_login", methodOnly(http.MethodPost, authHandlers.Login))
	handle("/auth/logout", "auth_logout", methodOnly(http.MethodPost, authHandlers.Logout))
	handle("/auth/refresh", "auth_refresh", methodOnly(http.MethodPost, authHandlers.Refresh))
	handle("/auth/me", "auth_me", methodOnly(http.MethodGet, authHandlers.Me), requireAuth)
	handle("/auth/password", "auth_password", methodOnly(http.MethodPost, authHandlers.ChangePassword), requireAuth)

	// Catalog
	handle("/products", "products", methodOnly(http.MethodGet, handlers.GetProducts))
	handle("/products/", "product", methodOnly(http.MethodGet, handlers.GetProduct))
	handle("/categories", "categories", methodOnly(http.MethodGet, handlers.GetCategories))
	handle("/banners", "banners", methodOnly(http.MethodGet, handlers.GetBanners))

	// Checkout
	handle("/checkout", "checkout_state", methodOnly(http.MethodGet, checkoutHandlers.GetState), requireAuth)
	handle("/checkout/methods", "checkout_methods", methodOnly(http.MethodGet, checkoutHandlers.GetMethods))
	handle("/checkout/shipping", "checkout_shipping", methodOnly(http.MethodPost, checkoutHandlers.SubmitShipping), requireAuth)
	handle("/checkout/method", "checkout_method", methodOnly(http.MethodPost, checkoutHandlers.SelectMethod), requireAuth)
	handle("/checkout/back", "checkout_back", methodOnly(http.MethodPost, checkoutHandlers.Back), requireAuth)
	handle("/checkout/complete", "checkout_complete", methodOnly(http.MethodPost, checkoutHandlers.Complete), requireAuth)

	// Orders
	handle("/orders", "orders", methodOnly(http.MethodGet, handlers.GetOrders), requireAuth)
	handle("/orders/", "order", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/cancel") && r.Method == http.MethodPost:
			handlers.CancelOrder(w, r)
		case r.Method == http.MethodGet:
			handlers.GetOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, requireAuth)

	// Admin: catalog management
	handle("/admin/products", "admin_products", methodOnly(http.MethodPost, adminHandlers.CreateProduct), requireAdmin)
	handle("/admin/products/", "admin_product", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			adminHandlers.UpdateProduct(w, r)
		case http.MethodDelete:
			adminHandlers.DeleteProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, requireAdmin)

	handle("/admin/categories", "admin_categories", methodOnly(http.MethodPost, adminHandlers.CreateCategory), requireAdmin)
	handle("/admin/categories/", "admin_category", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			adminHandlers.UpdateCategory(w, r)
		case http.MethodDelete:
			adminHandlers.DeleteCategory(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, requireAdmin)

	handle("/admin/banners", "admin_banners", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			adminHandlers.GetBanners(w, r)
		case http.MethodPost:
			adminHandlers.CreateBanner(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, requireAdmin)
	handle("/admin/banners/", "admin_banner", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			adminHandlers.UpdateBanner(w, r)
		case http.MethodDelete:
			adminHandlers.DeleteBanner(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, requireAdmin)

	// Admin: orders and proof review
	handle("/admin/orders", "admin_orders", methodOnly(http.MethodGet, adminHandlers.GetAllOrders), requireAdmin)
	handle("/admin/orders/", "admin_order", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/status") && r.Method == http.MethodPost:
			adminHandlers.UpdateOrderStatus(w, r)
		case strings.HasSuffix(path, "/verify-proof") && r.Method == http.MethodPost:
			adminHandlers.ReviewProof(w, r)
		case r.Method == http.MethodGet:
			adminHandlers.GetOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, requireAdmin)

	// Admin: users
	handle("/admin/users", "admin_users", methodOnly(http.MethodGet, adminHandlers.GetUsers), requireAdmin)
	handle("/admin/users/", "admin_user", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/active") && r.Method == http.MethodPost:
			adminHandlers.SetUserActive(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, requireAdmin)

	return withLogging(mux)
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
