package services

import (
	"errors"
	"testing"
)

func TestCredentialService(t *testing.T) {
	s := NewCredentialService()

	cred, err := s.Create("dev@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cred.ID == "" {
		t.Error("Create() returned empty id")
	}
	if cred.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}

	if _, err := s.Create("dev@example.com", "other"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate Create() error = %v, want ErrEmailExists", err)
	}

	got, err := s.CheckPassword("dev@example.com", "hunter22")
	if err != nil {
		t.Fatalf("CheckPassword() error = %v", err)
	}
	if got.ID != cred.ID {
		t.Errorf("CheckPassword() id = %q, want %q", got.ID, cred.ID)
	}

	if _, err := s.CheckPassword("dev@example.com", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("wrong password error = %v, want ErrInvalidPassword", err)
	}
	if _, err := s.CheckPassword("nobody@example.com", "hunter22"); !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("unknown email error = %v, want ErrCredentialNotFound", err)
	}
}
