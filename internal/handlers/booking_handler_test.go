package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hai-lomilomi/backend/internal/middleware"
	"github.com/hai-lomilomi/backend/internal/models"
	"github.com/hai-lomilomi/backend/internal/services"
	"github.com/hai-lomilomi/backend/internal/store"
)

func newBookingHandler() (*BookingHandler, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	return NewBookingHandler(services.NewBookingLedger(mem)), mem
}

func TestCreateBookingHandler(t *testing.T) {
	h, mem := newBookingHandler()
	ident := models.Identity{UID: "u1"}

	rec := doRequest(h.CreateBooking, http.MethodPost, "/api/bookings", models.CreateBookingRequest{
		ShopID:    "shop001",
		ServiceID: "sv001",
		StartAt:   time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		Price:     1200,
	}, &ident)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T", resp.Data)
	}
	bookingID, _ := data["bookingId"].(string)
	if bookingID == "" {
		t.Fatal("no bookingId in response")
	}

	var b models.Booking
	if err := mem.Get(context.Background(), store.BookingsCollection, bookingID, &b); err != nil {
		t.Fatalf("Get(bookings/%s) error = %v", bookingID, err)
	}
	if b.Status != models.BookingPendingPayment || b.Currency != "TWD" {
		t.Errorf("stored booking = %+v", b)
	}
	if want := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC); !b.EndAt.Equal(want) {
		t.Errorf("EndAt = %v, want %v", b.EndAt, want)
	}
}

func TestCreateBookingHandlerUnauthorized(t *testing.T) {
	h, mem := newBookingHandler()

	rec := doRequest(h.CreateBooking, http.MethodPost, "/api/bookings", models.CreateBookingRequest{
		ShopID:    "shop001",
		ServiceID: "sv001",
		StartAt:   time.Now(),
		Price:     1200,
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := mem.Len(store.BookingsCollection); got != 0 {
		t.Errorf("bookings collection has %d documents, want 0", got)
	}
}

func TestCreateBookingHandlerValidation(t *testing.T) {
	h, _ := newBookingHandler()
	ident := models.Identity{UID: "u1"}

	rec := doRequest(h.CreateBooking, http.MethodPost, "/api/bookings", models.CreateBookingRequest{
		ServiceID: "sv001",
		StartAt:   time.Now(),
		Price:     1200,
	}, &ident)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetBookingHandler(t *testing.T) {
	h, _ := newBookingHandler()
	ident := models.Identity{UID: "u1"}

	rec := doRequest(h.CreateBooking, http.MethodPost, "/api/bookings", models.CreateBookingRequest{
		ShopID:    "shop001",
		ServiceID: "sv001",
		StartAt:   time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		Price:     1200,
	}, &ident)
	resp := decodeResponse(t, rec)
	bookingID := resp.Data.(map[string]interface{})["bookingId"].(string)

	r := chi.NewRouter()
	r.Get("/api/bookings/{bookingId}", h.GetBooking)

	get := func(ident models.Identity, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+id, nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), ident))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec2 := get(ident, bookingID)
	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec2.Code, rec2.Body.String())
	}
	got := decodeResponse(t, rec2)
	data := got.Data.(map[string]interface{})
	if data["bookingId"] != bookingID || data["customerUid"] != "u1" {
		t.Errorf("booking = %v", data)
	}

	// Another customer sees not-found, not someone else's booking.
	rec3 := get(models.Identity{UID: "u2"}, bookingID)
	if rec3.Code != http.StatusNotFound {
		t.Errorf("other user status = %d, want 404", rec3.Code)
	}

	rec4 := get(ident, "BK-MISSING1")
	if rec4.Code != http.StatusNotFound {
		t.Errorf("missing booking status = %d, want 404", rec4.Code)
	}
}
