package store

import "time"

// Collection names understood by every RecordStore implementation.
const (
	CollectionProducts          = "products"
	CollectionCategories        = "categories"
	CollectionBanners           = "banners"
	CollectionUsers             = "users"
	CollectionSessions          = "sessions"
	CollectionShippingAddresses = "shipping_addresses"
	CollectionOrders            = "orders"
	CollectionOrderItems        = "order_items"
	CollectionPaymentProofs     = "payment_proofs"
)

// ProductRecord is a digital product (game code, gift card, subscription,
// license). Price is in integer currency units.
type ProductRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ProductType string    `json:"product_type"`
	Price       int       `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	CategoryIDs []string  `json:"category_ids,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRecord is a product category.
type CategoryRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ParentID    string    `json:"parent_id,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BannerRecord is a promotional banner shown on the storefront.
type BannerRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url,omitempty"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRecord is a customer or admin account.
type UserRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionRecord tracks a refresh-token session.
type SessionRecord struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	IPAddress        string    `json:"ip_address"`
	UserAgent        string    `json:"user_agent"`
}

// ShippingAddressRecord is the recipient/delivery information captured during
// checkout. One record is created per order.
type ShippingAddressRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderRecord is a placed order. Monetary fields are integer currency units.
type OrderRecord struct {
	ID                string    `json:"id"`
	OrderNumber       string    `json:"order_number"`
	UserID            string    `json:"user_id"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	PaymentMethod     string    `json:"payment_method"`
	Subtotal          int       `json:"subtotal"`
	ShippingFee       int       `json:"shipping_fee"`
	Tax               int       `json:"tax"`
	Discount          int       `json:"discount"`
	Total             int       `json:"total"`
	ShippingAddressID string    `json:"shipping_address_id"`
	BillingAddressID  string    `json:"billing_address_id"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OrderItemRecord is one line of an order. Name, type and price are
// snapshotted at order time so later product edits do not alter the order.
type OrderItemRecord struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductType string    `json:"product_type"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int       `json:"unit_price"`
	Subtotal    int       `json:"subtotal"`
	PlanID      string    `json:"plan_id,omitempty"`
	DurationID  string    `json:"duration_id,omitempty"`
	IsDelivered bool      `json:"is_delivered"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentProofRecord is the uploaded evidence of a manual out-of-band
// payment. Exactly one per order; Verified is flipped later by an admin.
type PaymentProofRecord struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	FileURL       string     `json:"file_url"`
	PaymentMethod string     `json:"payment_method"`
	TransactionID string     `json:"transaction_id,omitempty"`
	Amount        int        `json:"amount"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	Verified      bool       `json:"verified"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
}
