package models

import (
	"testing"
	"time"
)

func TestCreateBookingRequestValidate(t *testing.T) {
	valid := CreateBookingRequest{
		ShopID:    "shop001",
		ServiceID: "sv001",
		StartAt:   time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		Price:     1200,
	}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}

	var empty CreateBookingRequest
	errs := empty.Validate()
	for _, field := range []string{"shopId", "serviceId", "startAt"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("Validate() missing %s error: %v", field, errs)
		}
	}
}

func TestCreateBookingRequestDuration(t *testing.T) {
	var req CreateBookingRequest
	if got := req.Duration(); got != time.Hour {
		t.Errorf("default Duration() = %v, want 1h", got)
	}

	req.DurationSec = 5400
	if got := req.Duration(); got != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", got)
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	req := RegisterRequest{Name: "  ", Phone: ""}
	errs := req.Validate()
	if len(errs) != 2 {
		t.Errorf("Validate() = %v, want name and phone errors", errs)
	}

	req = RegisterRequest{Name: "Alice", Phone: "0912345678"}
	if errs := req.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}
