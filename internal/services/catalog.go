package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hai-lomilomi/backend/internal/models"
)

var ErrShopNotFound = errors.New("shop not found")

// Catalog serves the shop / service / slot data the home and reserve
// screens browse. Production uses the Mongo implementation; dev mode and
// tests use the in-memory one seeded from a JSON file.
type Catalog interface {
	ListShops(ctx context.Context) ([]models.Shop, error)
	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	ListServices(ctx context.Context, shopID string) ([]models.Service, error)
	// ListDaySchedules returns up to days day sections for the service,
	// starting at from's calendar date, ordered by date.
	ListDaySchedules(ctx context.Context, shopID, serviceID string, from time.Time, days int) ([]models.DaySchedule, error)
}

// CatalogService is the in-memory Catalog.
type CatalogService struct {
	mu        sync.RWMutex
	shops     map[string]*models.Shop
	services  map[string]*models.Service
	schedules []models.DaySchedule
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		shops:    make(map[string]*models.Shop),
		services: make(map[string]*models.Service),
	}
}

// Seed replaces the catalog contents.
func (s *CatalogService) Seed(shops []models.Shop, services []models.Service, schedules []models.DaySchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shops = make(map[string]*models.Shop, len(shops))
	for i := range shops {
		sh := shops[i]
		s.shops[sh.ID] = &sh
	}
	s.services = make(map[string]*models.Service, len(services))
	for i := range services {
		sv := services[i]
		s.services[sv.ID] = &sv
	}
	s.schedules = append([]models.DaySchedule(nil), schedules...)
}

func (s *CatalogService) ListShops(ctx context.Context) ([]models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shops := make([]models.Shop, 0, len(s.shops))
	for _, sh := range s.shops {
		shops = append(shops, *sh)
	}
	sort.Slice(shops, func(i, j int) bool { return shops[i].Name < shops[j].Name })
	return shops, nil
}

func (s *CatalogService) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, ok := s.shops[shopID]
	if !ok {
		return nil, ErrShopNotFound
	}
	out := *sh
	return &out, nil
}

func (s *CatalogService) ListServices(ctx context.Context, shopID string) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]models.Service, 0)
	for _, sv := range s.services {
		if sv.ShopID == shopID {
			services = append(services, *sv)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

func (s *CatalogService) ListDaySchedules(ctx context.Context, shopID, serviceID string, from time.Time, days int) ([]models.DaySchedule, error) {
	if days <= 0 {
		days = DefaultScheduleDays
	}
	first := from.UTC().Format(dateLayout)
	last := from.UTC().AddDate(0, 0, days-1).Format(dateLayout)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DaySchedule, 0)
	for _, d := range s.schedules {
		if d.ShopID != shopID || d.ServiceID != serviceID {
			continue
		}
		if d.Date < first || d.Date > last {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// DefaultScheduleDays is how many day sections the reserve screen shows
// when the client does not ask for a specific window.
const DefaultScheduleDays = 7

const dateLayout = "2006-01-02"
