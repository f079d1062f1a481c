package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hai-lomilomi/backend/internal/models"
	"github.com/hai-lomilomi/backend/internal/store"
)

const bookingIDPrefix = "BK-"

// BookingLedger creates booking records. Each call mints a fresh identifier
// and performs exactly one document write; there is no read-before-write and
// no automatic retry. Callers may safely retry a failed create since every
// attempt generates a new id.
type BookingLedger struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

func NewBookingLedger(s store.Store) *BookingLedger {
	return &BookingLedger{
		store: s,
		now:   time.Now,
		newID: newBookingID,
	}
}

// newBookingID composes "BK-" with the first 8 characters of an uppercase
// random UUID, the identifier scheme the existing booking documents use.
// Collisions are accepted as negligible at this id space.
func newBookingID() string {
	return bookingIDPrefix + strings.ToUpper(uuid.NewString())[:8]
}

// CreateBooking writes a new booking for ident and returns its id. The
// stored record starts in pendingPayment; every later status transition is
// an external workflow.
func (l *BookingLedger) CreateBooking(ctx context.Context, ident models.Identity, req models.CreateBookingRequest) (string, error) {
	if !ident.Authenticated() {
		return "", ErrNotAuthenticated
	}
	if errs := req.Validate(); len(errs) > 0 {
		for field, msg := range errs {
			return "", &ValidationError{Field: field, Message: msg}
		}
	}
	if req.Currency == "" {
		req.Currency = models.DefaultCurrency
	}

	bookingID := l.newID()
	now := l.now().UTC()

	booking := models.Booking{
		BookingID:   bookingID,
		CustomerUID: ident.UID,
		ShopID:      req.ShopID,
		ServiceID:   req.ServiceID,
		StartAt:     req.StartAt,
		EndAt:       req.StartAt.Add(req.Duration()),
		Status:      models.BookingPendingPayment,
		Price:       req.Price,
		Currency:    req.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := l.store.Set(ctx, store.BookingsCollection, bookingID, booking); err != nil {
		return "", fmt.Errorf("create booking %s: %w", bookingID, err)
	}
	return bookingID, nil
}

// Booking reads one booking. Callers only see their own records.
func (l *BookingLedger) Booking(ctx context.Context, ident models.Identity, bookingID string) (*models.Booking, error) {
	if !ident.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	var b models.Booking
	if err := l.store.Get(ctx, store.BookingsCollection, bookingID, &b); err != nil {
		return nil, err
	}
	if b.CustomerUID != ident.UID {
		// Hide other customers' bookings rather than acknowledging them.
		return nil, store.ErrNotFound
	}
	return &b, nil
}

// IsNotFound reports whether err means the requested document is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
