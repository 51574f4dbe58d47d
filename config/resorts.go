package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"schneelage/server/internal/models"
)

//go:embed resorts.json
var resortsData []byte

var (
	resortList []models.Resort
	resortLock sync.RWMutex
)

// LoadResorts parses the embedded resort reference data. Must be called
// once at startup before any accessor.
func LoadResorts() error {
	resortLock.Lock()
	defer resortLock.Unlock()

	var parsed struct {
		Resorts []models.Resort `json:"resorts"`
	}
	if err := json.Unmarshal(resortsData, &parsed); err != nil {
		return fmt.Errorf("failed to parse resorts data: %v", err)
	}
	if len(parsed.Resorts) == 0 {
		return fmt.Errorf("resorts data is empty")
	}

	resortList = parsed.Resorts
	return nil
}

// Resorts returns the full resort list in its reference order.
func Resorts() []models.Resort {
	resortLock.RLock()
	defer resortLock.RUnlock()
	return resortList
}

// ResortBySlug returns the resort with the given slug, or nil.
func ResortBySlug(slug string) *models.Resort {
	resortLock.RLock()
	defer resortLock.RUnlock()
	for i := range resortList {
		if resortList[i].Slug == slug {
			return &resortList[i]
		}
	}
	return nil
}

// ResortsByCountrySlug returns all resorts in a country page group.
func ResortsByCountrySlug(slug string) []models.Resort {
	resortLock.RLock()
	defer resortLock.RUnlock()
	var out []models.Resort
	for _, r := range resortList {
		if r.CountrySlug == slug {
			out = append(out, r)
		}
	}
	return out
}

// ResortsByRegionSlug returns all resorts in a region page group.
func ResortsByRegionSlug(slug string) []models.Resort {
	resortLock.RLock()
	defer resortLock.RUnlock()
	var out []models.Resort
	for _, r := range resortList {
		if r.RegionSlug == slug {
			out = append(out, r)
		}
	}
	return out
}
