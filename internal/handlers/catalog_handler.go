package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hai-lomilomi/backend/internal/models"
	"github.com/hai-lomilomi/backend/internal/services"
)

// CatalogHandler serves the shop / service / slot browsing endpoints behind
// the home and reserve screens.
type CatalogHandler struct {
	catalog services.Catalog
}

func NewCatalogHandler(catalog services.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultCatalogTimeout())
	defer cancel()

	shops, err := h.catalog.ListShops(ctx)
	if err != nil {
		log.Printf("[ListShops] error=%v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load shops"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(shops))
}

func (h *CatalogHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopId")

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultCatalogTimeout())
	defer cancel()

	shop, err := h.catalog.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, services.ErrShopNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Shop not found"))
			return
		}
		log.Printf("[GetShop] shop=%s error=%v", shopID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load shop"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(shop))
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopId")

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultCatalogTimeout())
	defer cancel()

	list, err := h.catalog.ListServices(ctx, shopID)
	if err != nil {
		log.Printf("[ListServices] shop=%s error=%v", shopID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load services"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(list))
}

// ListSlots returns day sections of bookable times. Query params:
// from=YYYY-MM-DD (default today), days=N (default 7).
func (h *CatalogHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopId")
	serviceID := chi.URLParam(r, "serviceId")

	from := time.Now().UTC()
	if s := r.URL.Query().Get("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid from date, want YYYY-MM-DD"))
			return
		}
		from = parsed
	}

	days := services.DefaultScheduleDays
	if s := r.URL.Query().Get("days"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > 31 {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid days, want 1-31"))
			return
		}
		days = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultCatalogTimeout())
	defer cancel()

	sections, err := h.catalog.ListDaySchedules(ctx, shopID, serviceID, from, days)
	if err != nil {
		log.Printf("[ListSlots] shop=%s service=%s error=%v", shopID, serviceID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load slots"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sections))
}
