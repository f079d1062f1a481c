package store

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore backs the document store with Cloud Firestore, the same
// database the mobile client was written against.
type FirestoreStore struct {
	client *firestore.Client
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsJSON string // optional; ADC is used when empty
}

func NewFirestoreStore(ctx context.Context, cfg FirestoreConfig) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, err
	}

	log.Printf("Firestore connected: project=%s", cfg.ProjectID)
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) Get(ctx context.Context, collection, key string, out interface{}) error {
	snap, err := s.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	return snap.DataTo(out)
}

func (s *FirestoreStore) Set(ctx context.Context, collection, key string, doc interface{}) error {
	_, err := s.client.Collection(collection).Doc(key).Set(ctx, doc)
	return err
}

func (s *FirestoreStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(&firestoreTx{client: s.client, t: t})
	})
}

type firestoreTx struct {
	client *firestore.Client
	t      *firestore.Transaction
}

func (tx *firestoreTx) Get(collection, key string, out interface{}) error {
	snap, err := tx.t.Get(tx.client.Collection(collection).Doc(key))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	return snap.DataTo(out)
}

func (tx *firestoreTx) Create(collection, key string, doc interface{}) error {
	return tx.t.Create(tx.client.Collection(collection).Doc(key), doc)
}
