package ranking

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"schneelage/server/internal/avalanche"
	"schneelage/server/internal/crowd"
	"schneelage/server/internal/models"
)

type fakeSnowSource struct {
	metrics map[string]*models.SnowMetrics // keyed by "lon,lat"
}

func (f *fakeSnowSource) FetchSnowMetrics(ctx context.Context, point orb.Point) *models.SnowMetrics {
	key := pointKey(point)
	return f.metrics[key]
}

func pointKey(p orb.Point) string {
	return strconv.FormatFloat(p[0], 'f', -1, 64) + "," + strconv.FormatFloat(p[1], 'f', -1, 64)
}

type fakeAvalancheSource struct {
	swissFetches int
	ratings      map[string]*models.AvalancheRating // keyed by slug
}

func (f *fakeAvalancheSource) FetchSwissBulletins(ctx context.Context) *avalanche.SwissBulletins {
	f.swissFetches++
	return &avalanche.SwissBulletins{}
}

func (f *fakeAvalancheSource) Resolve(ctx context.Context, resort *models.Resort, swiss *avalanche.SwissBulletins) *models.AvalancheRating {
	return f.ratings[resort.Slug]
}

func pinnedEstimator() *crowd.Estimator {
	est := crowd.NewEstimator("DE")
	est.Now = func() time.Time {
		// 2026-01-06 is a Tuesday: empty holiday set means low crowding.
		t, _ := time.Parse("2006-01-02", "2026-01-06")
		return t
	}
	return est
}

func testResorts() []models.Resort {
	return []models.Resort{
		{Slug: "a", Name: "Resort A", Country: "AT", Coordinates: orb.Point{1, 1}, ImpactRegions: []string{"AT"}},
		{Slug: "b", Name: "Resort B", Country: "AT", Coordinates: orb.Point{2, 2}, ImpactRegions: []string{"AT"}},
		{Slug: "c", Name: "Resort C", Country: "AT", Coordinates: orb.Point{3, 3}, ImpactRegions: []string{"AT"}},
	}
}

func TestRankToleratesPartialFailure(t *testing.T) {
	snow := &fakeSnowSource{metrics: map[string]*models.SnowMetrics{
		pointKey(orb.Point{1, 1}): {CurrentDepth: 120, NewSnow3d: 10, AvgTemp3d: -6, Trend: 12, Depth3d: 132},
		// Resort B's snow fetch failed: no entry
		pointKey(orb.Point{3, 3}): {CurrentDepth: 60, NewSnow3d: 2, AvgTemp3d: -1, Trend: 1, Depth3d: 61},
	}}
	av := &fakeAvalancheSource{ratings: map[string]*models.AvalancheRating{
		"a": {Level: 2, Source: avalanche.SourceEAWS},
		"c": {Level: 3, Source: avalanche.SourceEAWS},
	}}

	engine := NewEngine(snow, av, pinnedEstimator(), logrus.New())
	rows := engine.Rank(context.Background(), testResorts(), nil)

	assert.Len(t, rows, 3)

	// Sorted by score descending, ranks assigned 1..n
	assert.Equal(t, "a", rows[0].Slug)
	assert.Equal(t, 100, rows[0].Score)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "c", rows[1].Slug)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, "b", rows[2].Slug)
	assert.Equal(t, 3, rows[2].Rank)

	// B degrades to zero-valued snow fields, not to a missing row.
	b := rows[2]
	assert.Equal(t, 0, b.Depth)
	assert.Equal(t, 0.0, b.NewSnow3d)
	assert.Equal(t, 0, b.AvalancheLevel)
	assert.Equal(t, "stabil", b.Trend.Label)
	// depth 0, temp 0 (<5 bucket), trend 0 (>-10 bucket), crowd low:
	// 0 + 0 + 10 + 5 + 10
	assert.Equal(t, 25, b.Score)
}

func TestRankStableTieOrder(t *testing.T) {
	// Identical inputs give identical scores; input order must survive.
	metrics := map[string]*models.SnowMetrics{}
	for _, p := range []orb.Point{{1, 1}, {2, 2}, {3, 3}} {
		metrics[pointKey(p)] = &models.SnowMetrics{CurrentDepth: 50, NewSnow3d: 5, AvgTemp3d: -2, Trend: 3, Depth3d: 53}
	}
	snow := &fakeSnowSource{metrics: metrics}
	av := &fakeAvalancheSource{ratings: map[string]*models.AvalancheRating{}}

	engine := NewEngine(snow, av, pinnedEstimator(), logrus.New())
	rows := engine.Rank(context.Background(), testResorts(), nil)

	assert.Equal(t, []string{"a", "b", "c"}, []string{rows[0].Slug, rows[1].Slug, rows[2].Slug})
	assert.Equal(t, rows[0].Score, rows[1].Score)
}

func TestRankFetchesSwissBulletinsOnce(t *testing.T) {
	resorts := []models.Resort{
		{Slug: "zermatt", Country: "CH", Coordinates: orb.Point{1, 1}, ImpactRegions: []string{"CH"}},
		{Slug: "davos", Country: "CH", Coordinates: orb.Point{2, 2}, ImpactRegions: []string{"CH"}},
		{Slug: "st-anton", Country: "AT", Coordinates: orb.Point{3, 3}, ImpactRegions: []string{"AT"}},
	}
	snow := &fakeSnowSource{metrics: map[string]*models.SnowMetrics{}}
	av := &fakeAvalancheSource{ratings: map[string]*models.AvalancheRating{}}

	engine := NewEngine(snow, av, pinnedEstimator(), logrus.New())
	rows := engine.Rank(context.Background(), resorts, nil)

	assert.Len(t, rows, 3)
	assert.Equal(t, 1, av.swissFetches)
}

func TestRankWithoutSwissResortsSkipsBulletinFetch(t *testing.T) {
	snow := &fakeSnowSource{metrics: map[string]*models.SnowMetrics{}}
	av := &fakeAvalancheSource{ratings: map[string]*models.AvalancheRating{}}

	engine := NewEngine(snow, av, pinnedEstimator(), logrus.New())
	engine.Rank(context.Background(), testResorts(), nil)

	assert.Equal(t, 0, av.swissFetches)
}
