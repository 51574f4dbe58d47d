package models

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Fixed conversion rate used to render Swiss prices alongside EUR.
const chfToEUR = 1.05

// Resort is the immutable reference record for a single ski resort.
// The engine never mutates these; they are loaded once at startup.
type Resort struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	CountryName string    `json:"country_name"`
	CountrySlug string    `json:"country_slug"`
	Region      string    `json:"region"`
	RegionSlug  string    `json:"region_slug"`
	Coordinates orb.Point `json:"coordinates"` // lon, lat
	Elevation   Elevation `json:"elevation"`

	// Avalanche bulletin lookup codes: macro region selects the bulletin
	// document, the micro region keys the rating inside it.
	AvalancheRegion      string `json:"avalanche_region"`
	AvalancheMicroRegion string `json:"avalanche_micro_region"`

	// ImpactRegions lists the country and subdivision codes whose school
	// holidays drive visitor traffic at this resort.
	ImpactRegions []string `json:"impact_regions"`

	Tickets     Tickets      `json:"tickets"`
	Neighbors   []string     `json:"neighbors"`
	PeakPeriods []PeakPeriod `json:"peak_periods"`
}

type Elevation struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Tickets struct {
	Adult1Day float64 `json:"adult_1day"`
	Currency  string  `json:"currency"`
	Season    string  `json:"season"`
	Source    string  `json:"source"`
}

// PeakPeriod marks a stretch of the season with elevated expected crowding,
// used by the seasonal overview on the detail pages.
type PeakPeriod struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Level int    `json:"level"`
	Label string `json:"label"`
}

func (r *Resort) Lat() float64 { return r.Coordinates.Lat() }
func (r *Resort) Lon() float64 { return r.Coordinates.Lon() }

// DisplayPrice renders the one-day adult ticket in EUR for the ranking
// table, converting CHF at the fixed rate.
func (t Tickets) DisplayPrice() string {
	if t.Currency == "" {
		return ""
	}
	price := t.Adult1Day
	if t.Currency == "CHF" {
		price *= chfToEUR
	}
	return fmt.Sprintf("%d €", int(math.Round(price)))
}

// DisplayPriceDetail renders the ticket in its original currency, with the
// approximate EUR value appended for CHF prices.
func (t Tickets) DisplayPriceDetail() string {
	if t.Currency == "" {
		return ""
	}
	s := fmt.Sprintf("%.0f %s", t.Adult1Day, t.Currency)
	if t.Currency == "CHF" {
		s += fmt.Sprintf(" (~%d €)", int(math.Round(t.Adult1Day*chfToEUR)))
	}
	return s
}
