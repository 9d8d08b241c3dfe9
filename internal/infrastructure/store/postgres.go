package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
)

// ConnectPostgres opens a connection pool to PostgreSQL
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// PostgresRecordStore implements RecordStore using PostgreSQL. Each
// collection maps to a table of the same name.
type PostgresRecordStore struct {
	db *sql.DB
	mu sync.Mutex // serializes Update read-modify-write cycles
}

// NewPostgresRecordStore creates a new PostgreSQL-based record store
func NewPostgresRecordStore(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{db: db}
}

// Insert stores a new record. Inserts are upserts so that replaying the same
// record is harmless.
func (s *PostgresRecordStore) Insert(ctx context.Context, collection, id string, row any) error {
	switch collection {
	case CollectionProducts:
		return s.setProduct(ctx, row.(*ProductRecord))
	case CollectionCategories:
		return s.setCategory(ctx, row.(*CategoryRecord))
	case CollectionBanners:
		return s.setBanner(ctx, row.(*BannerRecord))
	case CollectionUsers:
		return s.setUser(ctx, row.(*UserRecord))
	case CollectionSessions:
		return s.setSession(ctx, row.(*SessionRecord))
	case CollectionShippingAddresses:
		return s.setShippingAddress(ctx, row.(*ShippingAddressRecord))
	case CollectionOrders:
		return s.setOrder(ctx, row.(*OrderRecord))
	case CollectionOrderItems:
		return s.setOrderItem(ctx, row.(*OrderItemRecord))
	case CollectionPaymentProofs:
		return s.setPaymentProof(ctx, row.(*PaymentProofRecord))
	}
	return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
}

// Get retrieves a record by id
func (s *PostgresRecordStore) Get(ctx context.Context, collection, id string) (any, bool, error) {
	switch collection {
	case CollectionProducts:
		return asAny(s.getProduct(ctx, id))
	case CollectionCategories:
		return asAny(s.getCategory(ctx, id))
	case CollectionBanners:
		return asAny(s.getBanner(ctx, id))
	case CollectionUsers:
		return asAny(s.getUser(ctx, id))
	case CollectionSessions:
		return asAny(s.getSession(ctx, id))
	case CollectionShippingAddresses:
		return asAny(s.getShippingAddress(ctx, id))
	case CollectionOrders:
		return asAny(s.getOrder(ctx, id))
	case CollectionOrderItems:
		return asAny(s.getOrderItem(ctx, id))
	case CollectionPaymentProofs:
		return asAny(s.getPaymentProof(ctx, id))
	}
	return nil, false, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
}

// GetAll retrieves all records in a collection
func (s *PostgresRecordStore) GetAll(ctx context.Context, collection string) ([]any, error) {
	return s.Select(ctx, collection, nil)
}

// Select retrieves records matching the filter
func (s *PostgresRecordStore) Select(ctx context.Context, collection string, filter Filter) ([]any, error) {
	switch collection {
	case CollectionProducts:
		return s.selectProducts(ctx, filter)
	case CollectionCategories:
		return s.selectCategories(ctx, filter)
	case CollectionBanners:
		return s.selectBanners(ctx, filter)
	case CollectionUsers:
		return s.selectUsers(ctx, filter)
	case CollectionSessions:
		return s.selectSessions(ctx, filter)
	case CollectionShippingAddresses:
		return s.selectShippingAddresses(ctx, filter)
	case CollectionOrders:
		return s.selectOrders(ctx, filter)
	case CollectionOrderItems:
		return s.selectOrderItems(ctx, filter)
	case CollectionPaymentProofs:
		return s.selectPaymentProofs(ctx, filter)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
}

// Update modifies a record using an update function
func (s *PostgresRecordStore) Update(ctx context.Context, collection, id string, updateFn func(current any) any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found, err := s.Get(ctx, collection, id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	if err := s.Insert(ctx, collection, id, updateFn(current)); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a record
func (s *PostgresRecordStore) Delete(ctx context.Context, collection, id string) error {
	switch collection {
	case CollectionProducts, CollectionCategories, CollectionBanners,
		CollectionUsers, CollectionSessions, CollectionShippingAddresses,
		CollectionOrders, CollectionOrderItems, CollectionPaymentProofs:
		_, err := s.db.ExecContext(ctx, "DELETE FROM "+collection+" WHERE id = $1", id)
		return err
	}
	return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
}

func asAny[T any](rec *T, found bool, err error) (any, bool, error) {
	if err != nil || !found {
		return nil, found, err
	}
	return rec, true, nil
}

// filterClause builds a WHERE clause for the allowed filter fields of a
// collection. Returns an empty clause for a nil filter.
func filterClause(filter Filter, allowed ...string) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	clause := ""
	var args []any
	for field, value := range filter {
		ok := false
		for _, a := range allowed {
			if field == a {
				ok = true
				break
			}
		}
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, field)
		}
		if clause == "" {
			clause = " WHERE "
		} else {
			clause += " AND "
		}
		args = append(args, value)
		clause += fmt.Sprintf("%s = $%d", field, len(args))
	}
	return clause, args, nil
}

// Product operations

func (s *PostgresRecordStore) setProduct(ctx context.Context, p *ProductRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, product_type, price, image_url, category_ids, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			product_type = EXCLUDED.product_type,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			category_ids = EXCLUDED.category_ids,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.Name, p.Description, p.ProductType, p.Price, p.ImageURL, pq.Array(p.CategoryIDs), p.IsActive, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *PostgresRecordStore) getProduct(ctx context.Context, id string) (*ProductRecord, bool, error) {
	var p ProductRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, product_type, price, image_url, category_ids, is_active, created_at, updated_at
		FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.ProductType, &p.Price, &p.ImageURL, pq.Array(&p.CategoryIDs), &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (s *PostgresRecordStore) selectProducts(ctx context.Context, filter Filter) ([]any, error) {
	query := `
		SELECT id, name, description, product_type, price, image_url, category_ids, is_active, created_at, updated_at
		FROM products`
	var args []any
	if v, ok := filter["category_id"]; ok {
		if len(filter) > 1 {
			return nil, fmt.Errorf("%w: category_id cannot be combined", ErrUnsupportedFilter)
		}
		query += " WHERE $1 = ANY(category_ids)"
		args = append(args, v)
	} else {
		clause, clauseArgs, err := filterClause(filter, "is_active")
		if err != nil {
			return nil, err
		}
		query += clause
		args = clauseArgs
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []any
	for rows.Next() {
		var p ProductRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ProductType, &p.Price, &p.ImageURL, pq.Array(&p.CategoryIDs), &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Category operations

func (s *PostgresRecordStore) setCategory(ctx context.Context, c *CategoryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, parent_id, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			parent_id = EXCLUDED.parent_id,
			sort_order = EXCLUDED.sort_order,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, c.ID, c.Name, c.Slug, c.Description, c.ParentID, c.SortOrder, c.IsActive, c.CreatedAt, c.UpdatedAt)
	return err
}

func (s *PostgresRecordStore) getCategory(ctx context.Context, id string) (*CategoryRecord, bool, error) {
	var c CategoryRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, parent_id, sort_order, is_active, created_at, updated_at
		FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

func (s *PostgresRecordStore) selectCategories(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "is_active", "parent_id", "slug")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, description, parent_id, sort_order, is_active, created_at, updated_at
		FROM categories`+clause+` ORDER BY sort_order, name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []any
	for rows.Next() {
		var c CategoryRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Banner operations

func (s *PostgresRecordStore) setBanner(ctx context.Context, b *BannerRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO banners (id, title, image_url, link_url, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			link_url = EXCLUDED.link_url,
			sort_order = EXCLUDED.sort_order,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, b.ID, b.Title, b.ImageURL, b.LinkURL, b.SortOrder, b.IsActive, b.CreatedAt, b.UpdatedAt)
	return err
}

func (s *PostgresRecordStore) getBanner(ctx context.Context, id string) (*BannerRecord, bool, error) {
	var b BannerRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, image_url, link_url, sort_order, is_active, created_at, updated_at
		FROM banners WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &b, true, nil
}

func (s *PostgresRecordStore) selectBanners(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "is_active")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, image_url, link_url, sort_order, is_active, created_at, updated_at
		FROM banners`+clause+` ORDER BY sort_order`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []any
	for rows.Next() {
		var b BannerRecord
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		banners = append(banners, &b)
	}
	return banners, rows.Err()
}

// User operations

func (s *PostgresRecordStore) setUser(ctx context.Context, u *UserRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt)
	return err
}

func (s *PostgresRecordStore) getUser(ctx context.Context, id string) (*UserRecord, bool, error) {
	var u UserRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &u, true, nil
}

func (s *PostgresRecordStore) selectUsers(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "email", "role", "is_active")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, password_hash, name, role, is_active, created_at, updated_at
		FROM users`+clause+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []any
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Session operations

func (s *PostgresRecordStore) setSession(ctx context.Context, sess *SessionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, refresh_token_hash, expires_at, created_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			refresh_token_hash = EXCLUDED.refresh_token_hash,
			expires_at = EXCLUDED.expires_at
	`, sess.ID, sess.UserID, sess.RefreshTokenHash, sess.ExpiresAt, sess.CreatedAt, sess.IPAddress, sess.UserAgent)
	return err
}

func (s *PostgresRecordStore) getSession(ctx context.Context, id string) (*SessionRecord, bool, error) {
	var sess SessionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, refresh_token_hash, expires_at, created_at, ip_address, user_agent
		FROM sessions WHERE id = $1
	`, id).Scan(&sess.ID, &sess.UserID, &sess.RefreshTokenHash, &sess.ExpiresAt, &sess.CreatedAt, &sess.IPAddress, &sess.UserAgent)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &sess, true, nil
}

func (s *PostgresRecordStore) selectSessions(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "user_id")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, refresh_token_hash, expires_at, created_at, ip_address, user_agent
		FROM sessions`+clause+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []any
	for rows.Next() {
		var sess SessionRecord
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.RefreshTokenHash, &sess.ExpiresAt, &sess.CreatedAt, &sess.IPAddress, &sess.UserAgent); err != nil {
			return nil, err
		}
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// Shipping address operations

func (s *PostgresRecordStore) setShippingAddress(ctx context.Context, a *ShippingAddressRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shipping_addresses (id, user_id, full_name, phone, address_line, city, country, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			address_line = EXCLUDED.address_line,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			is_default = EXCLUDED.is_default
	`, a.ID, a.UserID, a.FullName, a.Phone, a.AddressLine, a.City, a.Country, a.IsDefault, a.CreatedAt)
	return err
}

func (s *PostgresRecordStore) getShippingAddress(ctx context.Context, id string) (*ShippingAddressRecord, bool, error) {
	var a ShippingAddressRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, full_name, phone, address_line, city, country, is_default, created_at
		FROM shipping_addresses WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.AddressLine, &a.City, &a.Country, &a.IsDefault, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &a, true, nil
}

func (s *PostgresRecordStore) selectShippingAddresses(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "user_id")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, full_name, phone, address_line, city, country, is_default, created_at
		FROM shipping_addresses`+clause+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []any
	for rows.Next() {
		var a ShippingAddressRecord
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.AddressLine, &a.City, &a.Country, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, &a)
	}
	return addresses, rows.Err()
}

// Order operations

func (s *PostgresRecordStore) setOrder(ctx context.Context, o *OrderRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, user_id, status, payment_status, payment_method,
			subtotal, shipping_fee, tax, discount, total, shipping_address_id, billing_address_id,
			notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			payment_status = EXCLUDED.payment_status,
			updated_at = EXCLUDED.updated_at
	`, o.ID, o.OrderNumber, o.UserID, o.Status, o.PaymentStatus, o.PaymentMethod,
		o.Subtotal, o.ShippingFee, o.Tax, o.Discount, o.Total, o.ShippingAddressID, o.BillingAddressID,
		o.Notes, o.CreatedAt, o.UpdatedAt)
	return err
}

func (s *PostgresRecordStore) getOrder(ctx context.Context, id string) (*OrderRecord, bool, error) {
	var o OrderRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_number, user_id, status, payment_status, payment_method,
			subtotal, shipping_fee, tax, discount, total, shipping_address_id, billing_address_id,
			notes, created_at, updated_at
		FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.Subtotal, &o.ShippingFee, &o.Tax, &o.Discount, &o.Total, &o.ShippingAddressID, &o.BillingAddressID,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &o, true, nil
}

func (s *PostgresRecordStore) selectOrders(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "user_id", "status", "payment_status")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_number, user_id, status, payment_status, payment_method,
			subtotal, shipping_fee, tax, discount, total, shipping_address_id, billing_address_id,
			notes, created_at, updated_at
		FROM orders`+clause+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []any
	for rows.Next() {
		var o OrderRecord
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
			&o.Subtotal, &o.ShippingFee, &o.Tax, &o.Discount, &o.Total, &o.ShippingAddressID, &o.BillingAddressID,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// Order item operations

func (s *PostgresRecordStore) setOrderItem(ctx context.Context, it *OrderItemRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_type,
			quantity, unit_price, subtotal, plan_id, duration_id, is_delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			is_delivered = EXCLUDED.is_delivered
	`, it.ID, it.OrderID, it.ProductID, it.ProductName, it.ProductType,
		it.Quantity, it.UnitPrice, it.Subtotal, it.PlanID, it.DurationID, it.IsDelivered, it.CreatedAt)
	return err
}

func (s *PostgresRecordStore) getOrderItem(ctx context.Context, id string) (*OrderItemRecord, bool, error) {
	var it OrderItemRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, product_id, product_name, product_type,
			quantity, unit_price, subtotal, plan_id, duration_id, is_delivered, created_at
		FROM order_items WHERE id = $1
	`, id).Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductType,
		&it.Quantity, &it.UnitPrice, &it.Subtotal, &it.PlanID, &it.DurationID, &it.IsDelivered, &it.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &it, true, nil
}

func (s *PostgresRecordStore) selectOrderItems(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "order_id", "product_id")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, product_type,
			quantity, unit_price, subtotal, plan_id, duration_id, is_delivered, created_at
		FROM order_items`+clause+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []any
	for rows.Next() {
		var it OrderItemRecord
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductType,
			&it.Quantity, &it.UnitPrice, &it.Subtotal, &it.PlanID, &it.DurationID, &it.IsDelivered, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Payment proof operations

func (s *PostgresRecordStore) setPaymentProof(ctx context.Context, p *PaymentProofRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_proofs (id, order_id, file_url, payment_method, transaction_id,
			amount, uploaded_at, verified, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			verified = EXCLUDED.verified,
			verified_at = EXCLUDED.verified_at
	`, p.ID, p.OrderID, p.FileURL, p.PaymentMethod, p.TransactionID,
		p.Amount, p.UploadedAt, p.Verified, p.VerifiedAt)
	return err
}

func (s *PostgresRecordStore) getPaymentProof(ctx context.Context, id string) (*PaymentProofRecord, bool, error) {
	var p PaymentProofRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, file_url, payment_method, transaction_id,
			amount, uploaded_at, verified, verified_at
		FROM payment_proofs WHERE id = $1
	`, id).Scan(&p.ID, &p.OrderID, &p.FileURL, &p.PaymentMethod, &p.TransactionID,
		&p.Amount, &p.UploadedAt, &p.Verified, &p.VerifiedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (s *PostgresRecordStore) selectPaymentProofs(ctx context.Context, filter Filter) ([]any, error) {
	clause, args, err := filterClause(filter, "order_id", "verified")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, file_url, payment_method, transaction_id,
			amount, uploaded_at, verified, verified_at
		FROM payment_proofs`+clause+` ORDER BY uploaded_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proofs []any
	for rows.Next() {
		var p PaymentProofRecord
		if err := rows.Scan(&p.ID, &p.OrderID, &p.FileURL, &p.PaymentMethod, &p.TransactionID,
			&p.Amount, &p.UploadedAt, &p.Verified, &p.VerifiedAt); err != nil {
			return nil, err
		}
		proofs = append(proofs, &p)
	}
	return proofs, rows.Err()
}
