package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadResorts(t *testing.T) {
	require.NoError(t, LoadResorts())

	resorts := Resorts()
	assert.Len(t, resorts, 15)

	seen := map[string]bool{}
	for _, r := range resorts {
		assert.NotEmpty(t, r.Slug)
		assert.False(t, seen[r.Slug], "duplicate slug %s", r.Slug)
		seen[r.Slug] = true

		assert.Contains(t, []string{"AT", "CH", "DE"}, r.Country)
		assert.NotEmpty(t, r.AvalancheMicroRegion)
		assert.NotEmpty(t, r.ImpactRegions)
		assert.NotZero(t, r.Lat())
		assert.NotZero(t, r.Lon())
		assert.Greater(t, r.Elevation.Max, r.Elevation.Min)
		assert.Greater(t, r.Tickets.Adult1Day, 0.0)

		// Neighbor slugs must reference real resorts
		for _, n := range r.Neighbors {
			assert.NotNil(t, ResortBySlug(n), "%s references unknown neighbor %s", r.Slug, n)
		}
	}
}

func TestResortBySlug(t *testing.T) {
	require.NoError(t, LoadResorts())

	zermatt := ResortBySlug("zermatt")
	require.NotNil(t, zermatt)
	assert.Equal(t, "CH", zermatt.Country)
	assert.Equal(t, "CHF", zermatt.Tickets.Currency)

	assert.Nil(t, ResortBySlug("atlantis"))
}

func TestResortGroups(t *testing.T) {
	require.NoError(t, LoadResorts())

	austria := ResortsByCountrySlug("oesterreich")
	assert.NotEmpty(t, austria)
	for _, r := range austria {
		assert.Equal(t, "AT", r.Country)
	}

	tirol := ResortsByRegionSlug("tirol")
	assert.NotEmpty(t, tirol)
	for _, r := range tirol {
		assert.Equal(t, "Tirol", r.Region)
	}

	assert.Empty(t, ResortsByCountrySlug("narnia"))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.HTTPTimeout)
	assert.Contains(t, cfg.Upstream.MeteoBaseURL, "open-meteo")
	assert.Contains(t, cfg.Upstream.EAWSBaseURL, "avalanche.report")
	assert.Contains(t, cfg.Upstream.SLFBulletinURL, "slf.ch")
	assert.Contains(t, cfg.Upstream.HolidayBaseURL, "openholidaysapi")
	assert.Equal(t, "DE", cfg.Upstream.HolidayLanguage)
}
