package models

import "time"

// Shop is a bookable storefront shown on the home screen.
type Shop struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Address     string    `json:"address" bson:"address"`
	Phone       string    `json:"phone" bson:"phone"`
	Description string    `json:"description" bson:"description,omitempty"`
	OwnerUID    string    `json:"ownerUid" bson:"owner_uid,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// Service is a bookable offering belonging to a shop.
type Service struct {
	ID          string    `json:"id" bson:"_id"`
	ShopID      string    `json:"shopId" bson:"shop_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description,omitempty"`
	DurationSec int       `json:"durationSec" bson:"duration_sec"`
	Price       int       `json:"price" bson:"price"`
	Currency    string    `json:"currency" bson:"currency"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// DaySchedule is one day's bookable slots for a service, the section the
// reserve screen renders under a date header.
type DaySchedule struct {
	ShopID    string   `json:"shopId" bson:"shop_id"`
	ServiceID string   `json:"serviceId" bson:"service_id"`
	Date      string   `json:"date" bson:"date"`   // YYYY-MM-DD
	Label     string   `json:"label" bson:"label"` // e.g. "2025/09/01 Mon"
	Slots     []string `json:"slots" bson:"slots"` // HH:MM, ascending
}
