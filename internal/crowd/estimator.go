package crowd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"schneelage/server/internal/models"
)

const (
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelVeryHigh = "very_high"
)

type tierInfo struct {
	label string
	color string
}

var tiers = map[string]tierInfo{
	LevelLow:      {label: "Gering", color: "#22c55e"},
	LevelMedium:   {label: "Mittel", color: "#eab308"},
	LevelHigh:     {label: "Hoch", color: "#f97316"},
	LevelVeryHigh: {label: "Sehr hoch", color: "#dc2626"},
}

// dayFactors weights the holiday count by day of week: weekends and the
// Friday arrival day push crowding up, midweek pulls it down.
var dayFactors = map[time.Weekday]float64{
	time.Sunday:    1.3,
	time.Monday:    0.7,
	time.Tuesday:   0.6,
	time.Wednesday: 0.6,
	time.Thursday:  0.7,
	time.Friday:    1.2,
	time.Saturday:  1.5,
}

var dayNames = map[time.Weekday]string{
	time.Sunday:    "Sonntag",
	time.Monday:    "Montag",
	time.Tuesday:   "Dienstag",
	time.Wednesday: "Mittwoch",
	time.Thursday:  "Donnerstag",
	time.Friday:    "Freitag",
	time.Saturday:  "Samstag",
}

// Estimator converts active school holidays plus day-of-week into a
// four-tier expected-crowding estimate for one resort.
type Estimator struct {
	language string

	// Now supplies "today" for the active-holiday window and the weekday
	// factor. Tests pin it to a fixed date.
	Now func() time.Time
}

func NewEstimator(language string) *Estimator {
	return &Estimator{
		language: language,
		Now:      time.Now,
	}
}

// Estimate computes the crowding tier for a resort's impact regions from
// the merged holiday set.
func (e *Estimator) Estimate(holidays []models.HolidayInterval, impactRegions []string) models.CrowdEstimate {
	now := e.Now()
	today := now.Format("2006-01-02")
	weekday := now.Weekday()

	ferienCount := 0
	var activeNames []string
	for _, h := range holidays {
		if !h.ActiveOn(today) {
			continue
		}
		if !impactsResort(h, impactRegions) {
			continue
		}
		ferienCount++
		if name := h.DisplayName(e.language); name != "" {
			if regions := subdivisionNames(h); regions != "" {
				name = fmt.Sprintf("%s (%s)", name, regions)
			}
			activeNames = append(activeNames, name)
		}
	}

	score := float64(ferienCount) * dayFactors[weekday]

	var level string
	switch {
	case score >= 4.0:
		level = LevelVeryHigh
	case score >= 2.5:
		level = LevelHigh
	case score >= 1.0 || (ferienCount == 0 && weekday == time.Saturday):
		level = LevelMedium
	case ferienCount == 0 && weekday >= time.Monday && weekday <= time.Thursday:
		level = LevelLow
	default:
		// Remaining cases: no active holidays on a Friday or Sunday.
		level = LevelMedium
	}

	tier := tiers[level]
	return models.CrowdEstimate{
		Level:       level,
		Label:       tier.label,
		Color:       tier.color,
		Score:       math.Round(score*10) / 10,
		FerienCount: ferienCount,
		ActiveNames: activeNames,
		DayOfWeek:   dayNames[weekday],
		DayHint:     dayHint(weekday),
	}
}

// Overview computes the site-wide crowd bar shown above the ranking: it
// counts the distinct subdivisions with an active holiday anywhere in the
// catchment countries, regardless of any single resort's impact regions.
func (e *Estimator) Overview(holidays []models.HolidayInterval) models.CrowdOverview {
	now := e.Now()
	today := now.Format("2006-01-02")
	weekday := now.Weekday()

	regions := map[string]bool{}
	for _, h := range holidays {
		if !h.ActiveOn(today) {
			continue
		}
		for _, sub := range h.Subdivisions {
			regions[sub.ShortName] = true
		}
	}
	count := len(regions)

	var level string
	switch {
	case count >= 10:
		level = LevelVeryHigh
	case count >= 5:
		level = LevelHigh
	case count >= 2 || weekday == time.Saturday || weekday == time.Sunday:
		level = LevelMedium
	default:
		level = LevelLow
	}

	detail := dayNames[weekday]
	if count > 0 {
		detail += fmt.Sprintf(" + Ferien in %d Regionen", count)
	} else {
		detail += ", keine relevanten Ferien"
	}

	tier := tiers[level]
	return models.CrowdOverview{
		Level:       level,
		Label:       tier.label,
		Color:       tier.color,
		RegionCount: count,
		Detail:      detail,
	}
}

// impactsResort reports whether a holiday's subdivision codes or country
// code intersect the resort's impact regions.
func impactsResort(h models.HolidayInterval, impactRegions []string) bool {
	for _, sub := range h.Subdivisions {
		for _, region := range impactRegions {
			if sub.Code == region {
				return true
			}
		}
	}
	for _, region := range impactRegions {
		if h.Country == region {
			return true
		}
	}
	return false
}

func subdivisionNames(h models.HolidayInterval) string {
	names := make([]string, 0, len(h.Subdivisions))
	for _, sub := range h.Subdivisions {
		names = append(names, sub.ShortName)
	}
	return strings.Join(names, ", ")
}

func dayHint(weekday time.Weekday) string {
	switch {
	case weekday == time.Saturday || weekday == time.Sunday:
		return "Wochenende – generell mehr Betrieb"
	case weekday >= time.Monday && weekday <= time.Thursday:
		return "Wochentag – tendenziell ruhiger"
	default:
		return "Freitag – Anreisetag, zunehmender Betrieb"
	}
}
