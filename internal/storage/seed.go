package storage

import (
	"encoding/json"
	"os"

	"github.com/hai-lomilomi/backend/internal/models"
)

// CatalogSeed is the on-disk shape of a catalog seed file, used to populate
// an empty catalog at startup (dev and first deploy convenience).
type CatalogSeed struct {
	Shops     []models.Shop        `json:"shops"`
	Services  []models.Service     `json:"services"`
	Schedules []models.DaySchedule `json:"schedules"`
}

// LoadCatalogSeed reads a seed file. A missing file is not an error; it
// yields an empty seed so startup proceeds with whatever the catalog holds.
func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CatalogSeed{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var seed CatalogSeed
	if err := json.NewDecoder(file).Decode(&seed); err != nil {
		return nil, err
	}
	return &seed, nil
}
