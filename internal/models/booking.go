package models

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle of a booking document. Only the initial
// transition (creation -> pendingPayment) happens in this backend; payment,
// cancellation and completion are driven by external workflows.
type BookingStatus string

const (
	BookingDraft          BookingStatus = "draft"
	BookingPendingPayment BookingStatus = "pendingPayment"
	BookingPaid           BookingStatus = "paid"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingCanceled       BookingStatus = "canceled"
	BookingExpired        BookingStatus = "expired"
	BookingCompleted      BookingStatus = "completed"
	BookingNoShow         BookingStatus = "noShow"
	BookingRefunded       BookingStatus = "refunded"
)

// Booking is the reservation record stored at bookings/{bookingId}.
// Field names match the mobile client's document layout.
type Booking struct {
	BookingID   string        `json:"bookingId" firestore:"bookingId"`
	CustomerUID string        `json:"customerUid" firestore:"customerUid"`
	ShopID      string        `json:"shopId" firestore:"shopId"`
	ServiceID   string        `json:"serviceId" firestore:"serviceId"`
	StartAt     time.Time     `json:"startAt" firestore:"startAt"`
	EndAt       time.Time     `json:"endAt" firestore:"endAt"`
	Status      BookingStatus `json:"status" firestore:"status"`
	Price       int           `json:"price" firestore:"price"`
	Currency    string        `json:"currency" firestore:"currency"`
	CreatedAt   time.Time     `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" firestore:"updatedAt"`
}

// DefaultBookingDuration is applied when a request omits the duration.
const DefaultBookingDuration = 3600 * time.Second

// DefaultCurrency is applied when a request omits the currency.
const DefaultCurrency = "TWD"

type CreateBookingRequest struct {
	ShopID    string    `json:"shopId"`
	ServiceID string    `json:"serviceId"`
	StartAt   time.Time `json:"startAt"`
	// DurationSec defaults to 3600 when zero.
	DurationSec int    `json:"durationSec,omitempty"`
	Price       int    `json:"price"`
	Currency    string `json:"currency,omitempty"`
}

func (r *CreateBookingRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.ShopID) == "" {
		errors["shopId"] = "Shop is required"
	}
	if strings.TrimSpace(r.ServiceID) == "" {
		errors["serviceId"] = "Service is required"
	}
	if r.StartAt.IsZero() {
		errors["startAt"] = "Start time is required"
	}
	if r.DurationSec < 0 {
		errors["durationSec"] = "Duration must not be negative"
	}
	if r.Price < 0 {
		errors["price"] = "Price must not be negative"
	}

	return errors
}

// Duration returns the requested duration, defaulting to one hour.
func (r *CreateBookingRequest) Duration() time.Duration {
	if r.DurationSec == 0 {
		return DefaultBookingDuration
	}
	return time.Duration(r.DurationSec) * time.Second
}

type CreateBookingResponse struct {
	BookingID string `json:"bookingId"`
}
