package store

import "context"

// Collection names used by the document store.
const (
	UsersCollection    = "users"
	BookingsCollection = "bookings"
)

// Store is a key-addressed document store. Production uses Firestore;
// tests and dev mode use the in-memory implementation.
type Store interface {
	// Get decodes the document at collection/key into out.
	// Returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, key string, out interface{}) error

	// Set writes doc at collection/key, replacing any existing document.
	Set(ctx context.Context, collection, key string, doc interface{}) error

	// RunTransaction executes fn atomically. Reads and writes issued through
	// tx are serialized per key against other transactions touching the same
	// documents; if fn returns an error nothing is written.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the view of the store inside a transaction.
type Tx interface {
	// Get decodes the document at collection/key into out.
	// Returns ErrNotFound when the document does not exist.
	Get(collection, key string, out interface{}) error

	// Create stages a document write; it is applied when the transaction
	// commits and fails the commit if the document already exists.
	Create(collection, key string, doc interface{}) error
}
