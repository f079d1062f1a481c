package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hai-lomilomi/backend/internal/models"
	"github.com/hai-lomilomi/backend/internal/store"
)

// countingStore wraps a Store and counts every access, so tests can assert
// that validation failures never touch the store.
type countingStore struct {
	inner store.Store

	mu   sync.Mutex
	gets int
	sets int
	txns int
}

func (c *countingStore) Get(ctx context.Context, collection, key string, out interface{}) error {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.inner.Get(ctx, collection, key, out)
}

func (c *countingStore) Set(ctx context.Context, collection, key string, doc interface{}) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.inner.Set(ctx, collection, key, doc)
}

func (c *countingStore) RunTransaction(ctx context.Context, fn func(tx store.Tx) error) error {
	c.mu.Lock()
	c.txns++
	c.mu.Unlock()
	return c.inner.RunTransaction(ctx, fn)
}

func (c *countingStore) accesses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets + c.sets + c.txns
}

func TestRegisterIfAbsent(t *testing.T) {
	mem := store.NewMemoryStore()
	reg := NewIdentityRegistrar(mem)
	ident := models.Identity{UID: "u1", Email: "alice@example.com"}

	err := reg.RegisterIfAbsent(context.Background(), ident, models.RegisterRequest{
		Name:  "Alice",
		Phone: "0912345678",
	})
	if err != nil {
		t.Fatalf("RegisterIfAbsent() error = %v", err)
	}

	var prof models.UserProfile
	if err := mem.Get(context.Background(), store.UsersCollection, "u1", &prof); err != nil {
		t.Fatalf("Get(users/u1) error = %v", err)
	}
	if prof.UID != "u1" || prof.Name != "Alice" || prof.Phone != "0912345678" {
		t.Errorf("stored profile = %+v", prof)
	}
	if prof.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", prof.Email)
	}
	if prof.Role != models.RoleCustomer {
		t.Errorf("Role = %q, want customer", prof.Role)
	}
	if prof.Points != 0 {
		t.Errorf("Points = %d, want 0", prof.Points)
	}
	if prof.Status != models.ProfileStatusActive {
		t.Errorf("Status = %q, want active", prof.Status)
	}
	if prof.CreatedAt.IsZero() || prof.UpdatedAt.IsZero() {
		t.Errorf("timestamps not assigned: %+v", prof)
	}
}

func TestRegisterIfAbsentTrimsFields(t *testing.T) {
	mem := store.NewMemoryStore()
	reg := NewIdentityRegistrar(mem)
	ident := models.Identity{UID: "u1"}

	err := reg.RegisterIfAbsent(context.Background(), ident, models.RegisterRequest{
		Name:  "  Alice  ",
		Phone: " 0912345678\n",
	})
	if err != nil {
		t.Fatalf("RegisterIfAbsent() error = %v", err)
	}

	var prof models.UserProfile
	if err := mem.Get(context.Background(), store.UsersCollection, "u1", &prof); err != nil {
		t.Fatalf("Get(users/u1) error = %v", err)
	}
	if prof.Name != "Alice" || prof.Phone != "0912345678" {
		t.Errorf("fields not trimmed: name=%q phone=%q", prof.Name, prof.Phone)
	}
}

func TestRegisterIfAbsentAlreadyRegistered(t *testing.T) {
	mem := store.NewMemoryStore()
	reg := NewIdentityRegistrar(mem)
	ident := models.Identity{UID: "u1", Email: "alice@example.com"}

	if err := reg.RegisterIfAbsent(context.Background(), ident, models.RegisterRequest{Name: "Alice", Phone: "0912345678"}); err != nil {
		t.Fatalf("first RegisterIfAbsent() error = %v", err)
	}

	// Second attempt with different data must fail and leave the document
	// untouched.
	err := reg.RegisterIfAbsent(context.Background(), ident, models.RegisterRequest{Name: "Mallory", Phone: "0000000000"})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second RegisterIfAbsent() error = %v, want ErrAlreadyRegistered", err)
	}

	var prof models.UserProfile
	if err := mem.Get(context.Background(), store.UsersCollection, "u1", &prof); err != nil {
		t.Fatalf("Get(users/u1) error = %v", err)
	}
	if prof.Name != "Alice" || prof.Phone != "0912345678" {
		t.Errorf("stored profile mutated: %+v", prof)
	}
}

func TestRegisterIfAbsentConcurrent(t *testing.T) {
	mem := store.NewMemoryStore()
	reg := NewIdentityRegistrar(mem)
	ident := models.Identity{UID: "u1"}

	const n = 32
	results := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.RegisterIfAbsent(context.Background(), ident, models.RegisterRequest{
				Name:  "Alice",
				Phone: "0912345678",
			})
		}(i)
	}
	wg.Wait()

	succeeded, alreadyRegistered := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyRegistered):
			alreadyRegistered++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want exactly 1", succeeded)
	}
	if alreadyRegistered != n-1 {
		t.Errorf("already registered = %d, want %d", alreadyRegistered, n-1)
	}
	if got := mem.Len(store.UsersCollection); got != 1 {
		t.Errorf("users collection has %d documents, want 1", got)
	}
}

func TestRegisterIfAbsentValidation(t *testing.T) {
	tests := []struct {
		name      string
		ident     models.Identity
		req       models.RegisterRequest
		wantField string
		wantAuth  bool
	}{
		{
			name:     "no identity",
			ident:    models.Identity{},
			req:      models.RegisterRequest{Name: "Alice", Phone: "0912345678"},
			wantAuth: true,
		},
		{
			name:      "empty name",
			ident:     models.Identity{UID: "u1"},
			req:       models.RegisterRequest{Name: "   ", Phone: "0912345678"},
			wantField: "name",
		},
		{
			name:      "empty phone",
			ident:     models.Identity{UID: "u1"},
			req:       models.RegisterRequest{Name: "Alice", Phone: "\t"},
			wantField: "phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &countingStore{inner: store.NewMemoryStore()}
			reg := NewIdentityRegistrar(spy)

			err := reg.RegisterIfAbsent(context.Background(), tt.ident, tt.req)
			if tt.wantAuth {
				if !errors.Is(err, ErrNotAuthenticated) {
					t.Fatalf("error = %v, want ErrNotAuthenticated", err)
				}
			} else {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error = %v, want *ValidationError", err)
				}
				if verr.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
				}
			}

			// Precondition failures never touch the store.
			if got := spy.accesses(); got != 0 {
				t.Errorf("store accessed %d times, want 0", got)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	mem := store.NewMemoryStore()
	reg := NewIdentityRegistrar(mem)
	reg.now = func() time.Time { return time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC) }
	ident := models.Identity{UID: "u1", Email: "alice@example.com"}

	if _, err := reg.Profile(context.Background(), ident); !IsNotFound(err) {
		t.Fatalf("Profile() before registration error = %v, want not found", err)
	}

	if err := reg.RegisterIfAbsent(context.Background(), ident, models.RegisterRequest{Name: "Alice", Phone: "0912345678"}); err != nil {
		t.Fatalf("RegisterIfAbsent() error = %v", err)
	}

	prof, err := reg.Profile(context.Background(), ident)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if prof.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", prof.Name)
	}
	want := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	if !prof.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", prof.CreatedAt, want)
	}

	if _, err := reg.Profile(context.Background(), models.Identity{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Profile() without identity error = %v, want ErrNotAuthenticated", err)
	}
}

func TestIdentityEmail(t *testing.T) {
	reg := NewIdentityRegistrar(store.NewMemoryStore())

	email, ok := reg.IdentityEmail(models.Identity{UID: "u1", Email: "alice@example.com"})
	if !ok || email != "alice@example.com" {
		t.Errorf("IdentityEmail() = %q, %v", email, ok)
	}

	if _, ok := reg.IdentityEmail(models.Identity{}); ok {
		t.Errorf("IdentityEmail() on zero identity reported ok")
	}
}
