package models

// SnowMetrics is the normalized per-resort summary of one Open-Meteo
// forecast response. Depths are whole centimeters, snowfall and
// temperatures are rounded to one decimal. All per-day slices align to
// the same DailyDates sequence.
type SnowMetrics struct {
	CurrentDepth  int       `json:"current_depth"`
	Depth3d       int       `json:"depth_3d"`
	Depth7d       int       `json:"depth_7d"`
	NewSnow3d     float64   `json:"new_snow_3d"`
	SnowfallDaily []float64 `json:"snowfall_daily"`
	AvgTemp3d     float64   `json:"avg_temp_3d"`
	Trend         int       `json:"trend"` // depth_3d - current_depth, cm
	MaxTemps      []float64 `json:"max_temps"`
	MinTemps      []float64 `json:"min_temps"`
	DailyDates    []string  `json:"daily_dates"`
}

// AvalancheRating holds a resolved danger level for one resort.
// Level 0 means no data was available; it is never a real danger level.
type AvalancheRating struct {
	Level    int      `json:"level"` // 0..5
	Source   string   `json:"source"`
	Problems []string `json:"problems,omitempty"`
}

// HolidayInterval is one school-holiday entry tagged with its source
// country. Dates are inclusive ISO calendar dates, comparable as strings.
type HolidayInterval struct {
	Country      string          `json:"country"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Subdivisions []Subdivision   `json:"subdivisions"`
	Names        []LocalizedText `json:"names"`
}

type Subdivision struct {
	Code      string `json:"code"`
	ShortName string `json:"shortName"`
}

type LocalizedText struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// ActiveOn reports whether the interval covers the given ISO date.
func (h HolidayInterval) ActiveOn(date string) bool {
	return h.StartDate <= date && h.EndDate >= date
}

// DisplayName returns the localized holiday name, preferring the given
// language and falling back to the first entry.
func (h HolidayInterval) DisplayName(language string) string {
	for _, n := range h.Names {
		if n.Language == language {
			return n.Text
		}
	}
	if len(h.Names) > 0 {
		return h.Names[0].Text
	}
	return ""
}

// CrowdEstimate is the expected-crowding assessment for one resort on one
// day. Level is one of "low", "medium", "high", "very_high".
type CrowdEstimate struct {
	Level       string   `json:"level"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	Score       float64  `json:"score"`
	FerienCount int      `json:"ferien_count"`
	ActiveNames []string `json:"active_names"`
	DayOfWeek   string   `json:"day_of_week"`
	DayHint     string   `json:"day_hint"`
}

// CrowdOverview is the site-wide expected-crowding banner, derived from
// all active holidays rather than one resort's impact regions.
type CrowdOverview struct {
	Level       string `json:"level"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	RegionCount int    `json:"region_count"`
	Detail      string `json:"detail"`
}

// TrendDirection classifies the change between two depth samples for
// display. It never feeds back into the score.
type TrendDirection struct {
	Arrow string `json:"arrow"`
	Class string `json:"class"`
	Label string `json:"label"`
}

// ScoreResult is the composite 0-100 condition score with its label.
type ScoreResult struct {
	Score int            `json:"score"`
	Label string         `json:"label"`
	Trend TrendDirection `json:"trend"`
}

// RankingRow is one entry of the sorted resort ranking, the schema the
// rendering layer consumes.
type RankingRow struct {
	Rank           int            `json:"rank"`
	Slug           string         `json:"slug"`
	Name           string         `json:"name"`
	Region         string         `json:"region"`
	Country        string         `json:"country"`
	Score          int            `json:"score"`
	Label          string         `json:"label"`
	Depth          int            `json:"depth"`
	NewSnow3d      float64        `json:"new_snow_3d"`
	Trend          TrendDirection `json:"trend"`
	AvalancheLevel int            `json:"avalanche_level"`
	CrowdLevel     string         `json:"crowd_level"`
	Ticket         string         `json:"ticket"`
}
