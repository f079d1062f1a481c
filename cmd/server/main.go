package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hai-lomilomi/backend/internal/config"
	"github.com/hai-lomilomi/backend/internal/handlers"
	appMiddleware "github.com/hai-lomilomi/backend/internal/middleware"
	"github.com/hai-lomilomi/backend/internal/services"
	"github.com/hai-lomilomi/backend/internal/storage"
	"github.com/hai-lomilomi/backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Document store: Firestore when a GCP project is configured, else the
	// in-memory store (local development without credentials).
	var docs store.Store
	if cfg.FirebaseProjectID != "" {
		fs, err := store.NewFirestoreStore(ctx, store.FirestoreConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Firestore: %v", err)
		}
		defer fs.Close()
		docs = fs
	} else {
		log.Printf("Warning: FIREBASE_PROJECT_ID not set, using in-memory document store")
		docs = store.NewMemoryStore()
	}

	// Catalog: Mongo in production, in-memory otherwise. Both can be seeded
	// from a JSON file.
	var catalog services.Catalog
	seed, err := loadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file %s: %v", cfg.SeedFile, err)
	}
	if cfg.MongoURI != "" {
		mc, err := services.NewMongoCatalogService(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mc.Close(ctx)
		if seed != nil {
			if err := mc.SeedCatalog(ctx, seed.Shops, seed.Services, seed.Schedules); err != nil {
				log.Printf("Warning: catalog seeding failed: %v", err)
			}
		}
		catalog = mc
	} else {
		log.Printf("Warning: MONGO_URI not set, using in-memory catalog")
		mem := services.NewCatalogService()
		if seed != nil {
			mem.Seed(seed.Shops, seed.Services, seed.Schedules)
		}
		catalog = mem
	}

	// Services
	registrar := services.NewIdentityRegistrar(docs)
	ledger := services.NewBookingLedger(docs)
	credentials := services.NewCredentialService()
	if cfg.DevLoginEmail != "" && cfg.DevLoginPassword != "" {
		if _, err := credentials.Create(cfg.DevLoginEmail, cfg.DevLoginPassword); err != nil {
			log.Printf("Warning: failed to create dev login: %v", err)
		}
	}

	// Auth middleware: Firebase ID tokens in production, HS256 JWTs in dev.
	var requireAuth func(http.Handler) http.Handler
	if cfg.AuthMode == "jwt" {
		requireAuth = appMiddleware.JWTAuth(cfg.JWTSecret)
		log.Printf("Auth mode: jwt (dev)")
	} else {
		authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
		}
		requireAuth = appMiddleware.FirebaseAuth(authClient)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(registrar, credentials, cfg.JWTSecret, cfg.JWTExpiration)
	bookingHandler := handlers.NewBookingHandler(ledger)
	catalogHandler := handlers.NewCatalogHandler(catalog)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		if cfg.AuthMode == "jwt" {
			r.Post("/auth/login", authHandler.Login)
		}

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", authHandler.GetProfile)
				r.Get("/email", authHandler.GetEmail)
				r.Post("/register", authHandler.Register)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", bookingHandler.CreateBooking)
				r.Get("/{bookingId}", bookingHandler.GetBooking)
			})

			r.Route("/shops", func(r chi.Router) {
				r.Get("/", catalogHandler.ListShops)
				r.Route("/{shopId}", func(r chi.Router) {
					r.Get("/", catalogHandler.GetShop)
					r.Get("/services", catalogHandler.ListServices)
					r.Get("/services/{serviceId}/slots", catalogHandler.ListSlots)
				})
			})
		})
	})

	log.Printf("lomilomi API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func loadSeed(path string) (*storage.CatalogSeed, error) {
	if path == "" {
		return nil, nil
	}
	return storage.LoadCatalogSeed(path)
}
