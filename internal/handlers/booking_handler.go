package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hai-lomilomi/backend/internal/middleware"
	"github.com/hai-lomilomi/backend/internal/models"
	"github.com/hai-lomilomi/backend/internal/services"
)

type BookingHandler struct {
	ledger *services.BookingLedger
}

func NewBookingHandler(ledger *services.BookingLedger) *BookingHandler {
	return &BookingHandler{ledger: ledger}
}

// CreateBooking writes a new booking for the caller and returns its id.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	bookingID, err := h.ledger.CreateBooking(ctx, ident, req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Please sign in"))
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{verr.Field: verr.Message}))
		default:
			log.Printf("[CreateBooking] user=%s error=%v", ident.UID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create booking"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.CreateBookingResponse{BookingID: bookingID}))
}

// GetBooking returns one of the caller's bookings.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	bookingID := chi.URLParam(r, "bookingId")
	if bookingID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing bookingId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	booking, err := h.ledger.Booking(ctx, ident, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Please sign in"))
		case services.IsNotFound(err):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Booking not found"))
		default:
			log.Printf("[GetBooking] user=%s booking=%s error=%v", ident.UID, bookingID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load booking"))
		}
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(booking))
}
