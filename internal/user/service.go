package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/dg-storefront/internal/auth"
	"github.com/example/dg-storefront/internal/infrastructure/store"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("email is required")
	ErrInvalidName        = errors.New("name is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDeactivated    = errors.New("user account is deactivated")
)

// Service handles user accounts
type Service struct {
	records store.RecordStore
}

// NewService creates a new user service
func NewService(records store.RecordStore) *Service {
	return &Service{records: records}
}

// Register creates a new customer account
func (s *Service) Register(ctx context.Context, email, password, name string) (*store.UserRecord, error) {
	return s.RegisterWithRole(ctx, email, password, name, "customer")
}

// RegisterAdmin creates a new admin account
func (s *Service) RegisterAdmin(ctx context.Context, email, password, name string) (*store.UserRecord, error) {
	return s.RegisterWithRole(ctx, email, password, name, "admin")
}

// RegisterWithRole creates a new account with a specific role
func (s *Service) RegisterWithRole(ctx context.Context, email, password, name, role string) (*store.UserRecord, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if _, err := s.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &store.UserRecord{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.records.Insert(ctx, store.CollectionUsers, u.ID, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and returns the account
func (s *Service) Authenticate(ctx context.Context, email, password string) (*store.UserRecord, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserDeactivated
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns an account by id
func (s *Service) Get(ctx context.Context, id string) (*store.UserRecord, error) {
	raw, found, err := s.records.Get(ctx, store.CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return raw.(*store.UserRecord), nil
}

// GetByEmail returns an account by email
func (s *Service) GetByEmail(ctx context.Context, email string) (*store.UserRecord, error) {
	rows, err := s.records.Select(ctx, store.CollectionUsers, store.Filter{"email": email})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}
	return rows[0].(*store.UserRecord), nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *Service) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(currentPassword, u.PasswordHash) {
		return ErrInvalidCredentials
	}
	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	updated, err := s.records.Update(ctx, store.CollectionUsers, id, func(current any) any {
		u := current.(*store.UserRecord)
		u.PasswordHash = passwordHash
		u.UpdatedAt = time.Now()
		return u
	})
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}
	return nil
}

// List returns all accounts. Admin only.
func (s *Service) List(ctx context.Context) ([]*store.UserRecord, error) {
	rows, err := s.records.GetAll(ctx, store.CollectionUsers)
	if err != nil {
		return nil, err
	}
	users := make([]*store.UserRecord, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.(*store.UserRecord))
	}
	return users, nil
}

// SetActive activates or deactivates an account. Admin only.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	updated, err := s.records.Update(ctx, store.CollectionUsers, id, func(current any) any {
		u := current.(*store.UserRecord)
		u.IsActive = active
		u.UpdatedAt = time.Now()
		return u
	})
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}
	return nil
}
