package avalanche

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"schneelage/server/internal/models"
)

const (
	SourceEAWS = "eaws"
	SourceSLF  = "slf"
)

// slfLevelMap translates the qualitative CAAML main value to the 1-5 scale.
var slfLevelMap = map[string]int{
	"low":          1,
	"moderate":     2,
	"considerable": 3,
	"high":         4,
	"very_high":    5,
}

// Resolver produces one avalanche danger rating per resort. Swiss resorts
// are resolved against a bulletin document fetched once per ranking
// request; all others hit the EAWS archive for their macro region.
type Resolver struct {
	eawsBaseURL string
	slfURL      string
	client      *resty.Client
	logger      *logrus.Logger

	// Now is the clock used for the dated EAWS bulletin URL. Tests pin it.
	Now func() time.Time
}

func NewResolver(eawsBaseURL, slfURL string, timeout time.Duration, logger *logrus.Logger) *Resolver {
	return &Resolver{
		eawsBaseURL: eawsBaseURL,
		slfURL:      slfURL,
		client:      resty.New().SetTimeout(timeout),
		logger:      logger,
		Now:         time.Now,
	}
}

// SwissBulletins is the parsed SLF CAAML bulletin list, shared across all
// Swiss resorts of one ranking request.
type SwissBulletins struct {
	Bulletins []swissBulletin `json:"bulletins"`
}

type swissBulletin struct {
	Regions           []swissRegion  `json:"regions"`
	DangerRatings     []dangerRating `json:"dangerRatings"`
	AvalancheProblems []swissProblem `json:"avalancheProblems"`
}

type swissRegion struct {
	RegionID string `json:"regionID"`
}

type dangerRating struct {
	MainValue string `json:"mainValue"`
}

type swissProblem struct {
	ProblemType string `json:"problemType"`
}

type eawsRatings struct {
	MaxDangerRatings map[string]int `json:"maxDangerRatings"`
}

// FetchSwissBulletins loads the current SLF bulletin document. Returns nil
// on any failure; Swiss resorts then degrade to a missing rating.
func (r *Resolver) FetchSwissBulletins(ctx context.Context) *SwissBulletins {
	resp, err := r.client.R().SetContext(ctx).Get(r.slfURL)
	if err != nil {
		r.logger.WithError(err).Warn("SLF bulletin request failed")
		return nil
	}
	if resp.IsError() {
		r.logger.WithField("status", resp.StatusCode()).Warn("SLF bulletin returned non-success status")
		return nil
	}

	var bulletins SwissBulletins
	if err := json.Unmarshal(resp.Body(), &bulletins); err != nil {
		r.logger.WithError(err).Warn("Failed to parse SLF bulletin response")
		return nil
	}
	return &bulletins
}

// Resolve returns the danger rating for a resort, or nil when no source
// could provide one. For Swiss resorts the caller passes the shared
// bulletin document; swiss may be nil when that fetch failed.
func (r *Resolver) Resolve(ctx context.Context, resort *models.Resort, swiss *SwissBulletins) *models.AvalancheRating {
	if resort.Country == "CH" {
		if swiss == nil {
			return nil
		}
		return ResolveSwiss(swiss, resort.AvalancheMicroRegion)
	}
	return r.fetchEAWS(ctx, resort.AvalancheRegion, resort.AvalancheMicroRegion)
}

// ResolveSwiss scans the bulletin list for the entry covering the given
// micro region. No covering bulletin means no rating, not level 0.
func ResolveSwiss(swiss *SwissBulletins, microRegion string) *models.AvalancheRating {
	for _, b := range swiss.Bulletins {
		found := false
		for _, region := range b.Regions {
			if region.RegionID == microRegion {
				found = true
				break
			}
		}
		if !found || len(b.DangerRatings) == 0 {
			continue
		}

		problems := make([]string, 0, len(b.AvalancheProblems))
		for _, p := range b.AvalancheProblems {
			problems = append(problems, p.ProblemType)
		}
		return &models.AvalancheRating{
			Level:    slfLevelMap[b.DangerRatings[0].MainValue],
			Source:   SourceSLF,
			Problems: problems,
		}
	}
	return nil
}

func (r *Resolver) fetchEAWS(ctx context.Context, region, microRegion string) *models.AvalancheRating {
	date := r.Now().Format("2006-01-02")
	url := fmt.Sprintf("%s/%s/%s-%s.ratings.json", r.eawsBaseURL, date, date, region)

	resp, err := r.client.R().SetContext(ctx).Get(url)
	if err != nil {
		r.logger.WithError(err).WithField("region", region).Warn("EAWS ratings request failed")
		return nil
	}
	if resp.IsError() {
		r.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode(),
			"region": region,
		}).Warn("EAWS ratings returned non-success status")
		return nil
	}

	var ratings eawsRatings
	if err := json.Unmarshal(resp.Body(), &ratings); err != nil {
		r.logger.WithError(err).WithField("region", region).Warn("Failed to parse EAWS ratings response")
		return nil
	}

	return &models.AvalancheRating{
		Level:  ResolveEAWSLevel(ratings.MaxDangerRatings, region, microRegion),
		Source: SourceEAWS,
	}
}

// ResolveEAWSLevel picks a danger level from a per-region rating map with
// progressively wider fallback: exact micro-region key, then the highest
// among siblings sharing the micro region's parent prefix, then the
// highest among all keys. Keys containing a colon carry elevation or
// aspect qualifiers and are never comparable flat ratings, so every
// fallback tier skips them. Returns 0 when the map holds nothing usable.
func ResolveEAWSLevel(ratings map[string]int, region, microRegion string) int {
	if microRegion != "" {
		if level, ok := ratings[microRegion]; ok {
			return level
		}
	}

	prefix := region
	if microRegion != "" {
		if idx := strings.LastIndex(microRegion, "-"); idx >= 0 {
			prefix = microRegion[:idx]
		} else {
			prefix = ""
		}
	}

	maxLevel := 0
	for key, level := range ratings {
		if strings.HasPrefix(key, prefix) && !strings.Contains(key, ":") && level > maxLevel {
			maxLevel = level
		}
	}
	if maxLevel > 0 {
		return maxLevel
	}

	for key, level := range ratings {
		if !strings.Contains(key, ":") && level > maxLevel {
			maxLevel = level
		}
	}
	return maxLevel
}

// LevelLabel returns the German danger scale label for a level.
func LevelLabel(level int) string {
	labels := map[int]string{
		1: "Gering",
		2: "Mäßig",
		3: "Erheblich",
		4: "Groß",
		5: "Sehr groß",
	}
	if label, ok := labels[level]; ok {
		return label
	}
	return "Unbekannt"
}

// TranslateProblem maps an EAWS problem type to its German display name.
// Unknown types pass through untranslated.
func TranslateProblem(problemType string) string {
	translations := map[string]string{
		"new_snow":               "Neuschnee",
		"wind_slab":              "Triebschnee",
		"persistent_weak_layers": "Altschneeproblem",
		"wet_snow":               "Nassschnee",
		"gliding_snow":           "Gleitschnee",
	}
	if name, ok := translations[problemType]; ok {
		return name
	}
	return problemType
}
