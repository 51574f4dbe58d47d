package ranking

import (
	"context"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"schneelage/server/internal/avalanche"
	"schneelage/server/internal/crowd"
	"schneelage/server/internal/models"
	"schneelage/server/internal/scoring"
)

// SnowSource fetches the normalized snow summary for a coordinate,
// returning nil when the upstream call failed.
type SnowSource interface {
	FetchSnowMetrics(ctx context.Context, point orb.Point) *models.SnowMetrics
}

// AvalancheSource resolves danger ratings. The Swiss bulletin document is
// fetched once per ranking request and shared across all CH resorts.
type AvalancheSource interface {
	FetchSwissBulletins(ctx context.Context) *avalanche.SwissBulletins
	Resolve(ctx context.Context, resort *models.Resort, swiss *avalanche.SwissBulletins) *models.AvalancheRating
}

// Engine fans out snow and avalanche lookups over a resort set and turns
// the results into a sorted ranking. Partial upstream failure degrades a
// resort's fields to zero values; every input resort yields a row.
type Engine struct {
	snow      SnowSource
	avalanche AvalancheSource
	crowd     *crowd.Estimator
	logger    *logrus.Logger
}

func NewEngine(snow SnowSource, av AvalancheSource, estimator *crowd.Estimator, logger *logrus.Logger) *Engine {
	return &Engine{
		snow:      snow,
		avalanche: av,
		crowd:     estimator,
		logger:    logger,
	}
}

// resortData collects the per-resort fetch results before scoring.
type resortData struct {
	snow   *models.SnowMetrics
	rating *models.AvalancheRating
}

// Rank computes the sorted ranking for the given resorts against a
// pre-fetched holiday set. Ties keep the input order (stable sort).
func (e *Engine) Rank(ctx context.Context, resorts []models.Resort, holidays []models.HolidayInterval) []models.RankingRow {
	swiss := e.fetchSharedSwissBulletins(ctx, resorts)

	data := make([]resortData, len(resorts))
	var wg sync.WaitGroup
	for i := range resorts {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			data[i].snow = e.snow.FetchSnowMetrics(ctx, resorts[i].Coordinates)
		}(i)
		go func(i int) {
			defer wg.Done()
			data[i].rating = e.avalanche.Resolve(ctx, &resorts[i], swiss)
		}(i)
	}
	wg.Wait()

	rows := make([]models.RankingRow, len(resorts))
	for i := range resorts {
		rows[i] = e.buildRow(&resorts[i], data[i], holidays)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// fetchSharedSwissBulletins loads the SLF document once when the set
// contains at least one Swiss resort.
func (e *Engine) fetchSharedSwissBulletins(ctx context.Context, resorts []models.Resort) *avalanche.SwissBulletins {
	for i := range resorts {
		if resorts[i].Country == "CH" {
			return e.avalanche.FetchSwissBulletins(ctx)
		}
	}
	return nil
}

func (e *Engine) buildRow(resort *models.Resort, data resortData, holidays []models.HolidayInterval) models.RankingRow {
	crowdEstimate := e.crowd.Estimate(holidays, resort.ImpactRegions)

	var depth, trend, depth3d int
	var newSnow3d, avgTemp3d float64
	if data.snow != nil {
		depth = data.snow.CurrentDepth
		newSnow3d = data.snow.NewSnow3d
		avgTemp3d = data.snow.AvgTemp3d
		trend = data.snow.Trend
		depth3d = data.snow.Depth3d
	} else {
		e.logger.WithField("resort", resort.Slug).Debug("Ranking resort without snow data")
		depth3d = depth
	}

	avalancheLevel := 0
	if data.rating != nil {
		avalancheLevel = data.rating.Level
	}

	score := scoring.Calculate(depth, newSnow3d, avgTemp3d, trend, crowdEstimate.Level)
	return models.RankingRow{
		Slug:           resort.Slug,
		Name:           resort.Name,
		Region:         resort.Region,
		Country:        resort.Country,
		Score:          score,
		Label:          scoring.Label(score),
		Depth:          depth,
		NewSnow3d:      newSnow3d,
		Trend:          scoring.TrendDirection(depth, depth3d),
		AvalancheLevel: avalancheLevel,
		CrowdLevel:     crowdEstimate.Level,
		Ticket:         resort.Tickets.DisplayPrice(),
	}
}
