package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hai-lomilomi/backend/internal/models"
	"github.com/hai-lomilomi/backend/internal/store"
)

// IdentityRegistrar creates member profiles, at most once per identity.
// All correctness comes from the store's transaction primitive: the
// read-then-create over users/{uid} is atomic, so concurrent registrations
// for the same identity resolve to exactly one stored document.
type IdentityRegistrar struct {
	store store.Store
	now   func() time.Time
}

func NewIdentityRegistrar(s store.Store) *IdentityRegistrar {
	return &IdentityRegistrar{store: s, now: time.Now}
}

// RegisterIfAbsent creates the profile document for ident, or fails with
// ErrAlreadyRegistered if one exists. On any failure path nothing is
// written. Name and phone are trimmed and must be non-empty; validation
// failures are reported before the store is touched.
func (r *IdentityRegistrar) RegisterIfAbsent(ctx context.Context, ident models.Identity, req models.RegisterRequest) error {
	if !ident.Authenticated() {
		return ErrNotAuthenticated
	}

	req.Trim()
	if req.Name == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if req.Phone == "" {
		return &ValidationError{Field: "phone", Message: "Phone is required"}
	}

	err := r.store.RunTransaction(ctx, func(tx store.Tx) error {
		var existing models.UserProfile
		err := tx.Get(store.UsersCollection, ident.UID, &existing)
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		now := r.now().UTC()
		return tx.Create(store.UsersCollection, ident.UID, models.UserProfile{
			UID:       ident.UID,
			Name:      req.Name,
			Phone:     req.Phone,
			Email:     ident.Email,
			Role:      models.RoleCustomer,
			Points:    0,
			Status:    models.ProfileStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("register profile %s: %w", ident.UID, err)
	}
	return nil
}

// Profile reads the caller's own profile document.
func (r *IdentityRegistrar) Profile(ctx context.Context, ident models.Identity) (*models.UserProfile, error) {
	if !ident.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	var prof models.UserProfile
	if err := r.store.Get(ctx, store.UsersCollection, ident.UID, &prof); err != nil {
		return nil, err
	}
	return &prof, nil
}

// IdentityEmail returns the signed-in user's email for display. Pure; no
// store access; absent when the caller is not authenticated.
func (r *IdentityRegistrar) IdentityEmail(ident models.Identity) (string, bool) {
	if !ident.Authenticated() {
		return "", false
	}
	return ident.Email, true
}
