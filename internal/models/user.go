package models

import (
	"strings"
	"time"
)

// Role of a profile. Customers book services; owners manage shops.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// Identity is the authenticated caller, as established by the auth
// middleware from a verified Firebase ID token (or a dev-mode JWT).
// It is passed into services explicitly; there is no ambient current user.
type Identity struct {
	UID   string
	Email string
}

// Authenticated reports whether this identity belongs to a signed-in user.
func (id Identity) Authenticated() bool {
	return id.UID != ""
}

// UserProfile is the member record stored at users/{uid}, keyed by the
// Firebase UID. Field names match the mobile client's document layout.
type UserProfile struct {
	UID       string    `json:"uid" firestore:"uid"`
	Name      string    `json:"name" firestore:"name"`
	Phone     string    `json:"phone" firestore:"phone"`
	Email     string    `json:"email" firestore:"email"`
	Role      Role      `json:"role" firestore:"role"`
	Points    int       `json:"points" firestore:"points"`
	Status    string    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

const ProfileStatusActive = "active"

type RegisterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Trim strips surrounding whitespace from the user-entered fields.
func (r *RegisterRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Phone) == "" {
		errors["phone"] = "Phone is required"
	}

	return errors
}

// Credential is a dev-mode email/password account (AUTH_MODE=jwt only).
// Production identities come from Firebase Auth and never touch this type.
type Credential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type AuthResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Email string `json:"email"`
}
