package services

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hai-lomilomi/backend/internal/models"
)

// MongoCatalogService is the production Catalog, backed by MongoDB.
type MongoCatalogService struct {
	client       *mongo.Client
	db           *mongo.Database
	shopsCol     *mongo.Collection
	servicesCol  *mongo.Collection
	schedulesCol *mongo.Collection
}

func NewMongoCatalogService(ctx context.Context, mongoURI, dbName string) (*MongoCatalogService, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless we force TLS 1.2.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	shops := db.Collection("shops")
	services := db.Collection("services")
	schedules := db.Collection("schedules")

	svc := &MongoCatalogService{
		client:       client,
		db:           db,
		shopsCol:     shops,
		servicesCol:  services,
		schedulesCol: schedules,
	}

	// Best-effort indexes.
	_, _ = shops.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "owner_uid", Value: 1}}},
	})
	_, _ = services.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shop_id", Value: 1}}},
	})
	_, _ = schedules.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "service_id", Value: 1}, {Key: "date", Value: 1}}},
	})

	log.Printf("MongoDB connected: db=%s", dbName)
	return svc, nil
}

func (s *MongoCatalogService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoCatalogService) ListShops(ctx context.Context) ([]models.Shop, error) {
	cur, err := s.shopsCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	shops := make([]models.Shop, 0)
	if err := cur.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (s *MongoCatalogService) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	var shop models.Shop
	if err := s.shopsCol.FindOne(ctx, bson.M{"_id": shopID}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return &shop, nil
}

func (s *MongoCatalogService) ListServices(ctx context.Context, shopID string) ([]models.Service, error) {
	cur, err := s.servicesCol.Find(ctx, bson.M{"shop_id": shopID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	services := make([]models.Service, 0)
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *MongoCatalogService) ListDaySchedules(ctx context.Context, shopID, serviceID string, from time.Time, days int) ([]models.DaySchedule, error) {
	if days <= 0 {
		days = DefaultScheduleDays
	}
	first := from.UTC().Format(dateLayout)
	last := from.UTC().AddDate(0, 0, days-1).Format(dateLayout)

	cur, err := s.schedulesCol.Find(ctx, bson.M{
		"shop_id":    shopID,
		"service_id": serviceID,
		"date":       bson.M{"$gte": first, "$lte": last},
	}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	schedules := make([]models.DaySchedule, 0)
	if err := cur.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// SeedCatalog inserts seed data into empty collections. Existing data is
// left alone so repeated startups are safe.
func (s *MongoCatalogService) SeedCatalog(ctx context.Context, shops []models.Shop, services []models.Service, schedules []models.DaySchedule) error {
	n, err := s.shopsCol.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if len(shops) > 0 {
		docs := make([]interface{}, len(shops))
		for i := range shops {
			docs[i] = shops[i]
		}
		if _, err := s.shopsCol.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	if len(services) > 0 {
		docs := make([]interface{}, len(services))
		for i := range services {
			docs[i] = services[i]
		}
		if _, err := s.servicesCol.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	if len(schedules) > 0 {
		docs := make([]interface{}, len(schedules))
		for i := range schedules {
			docs[i] = schedules[i]
		}
		if _, err := s.schedulesCol.InsertMany(ctx, docs); err != nil {
			return err
		}
	}

	log.Printf("catalog seeded: shops=%d services=%d schedules=%d", len(shops), len(services), len(schedules))
	return nil
}

// DefaultCatalogTimeout is a sane bound for catalog reads from handlers.
func DefaultCatalogTimeout() time.Duration { return 10 * time.Second }
