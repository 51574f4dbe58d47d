package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"schneelage/server/config"
	"schneelage/server/internal/avalanche"
	"schneelage/server/internal/crowd"
	"schneelage/server/internal/models"
	"schneelage/server/internal/ranking"
	"schneelage/server/internal/scoring"
)

// HolidaySource provides the merged holiday set for one request.
type HolidaySource interface {
	FetchAll(ctx context.Context) []models.HolidayInterval
}

type Handler struct {
	engine    *ranking.Engine
	snow      ranking.SnowSource
	avalanche ranking.AvalancheSource
	holidays  HolidaySource
	crowd     *crowd.Estimator
	logger    *logrus.Logger
}

func NewHandler(engine *ranking.Engine, snow ranking.SnowSource, av ranking.AvalancheSource, holidays HolidaySource, estimator *crowd.Estimator, logger *logrus.Logger) *Handler {
	return &Handler{
		engine:    engine,
		snow:      snow,
		avalanche: av,
		holidays:  holidays,
		crowd:     estimator,
		logger:    logger,
	}
}

// GetRanking returns the sorted condition ranking for all resorts, or for
// one country/region page group when filtered.
func (h *Handler) GetRanking(c *gin.Context) {
	resorts := config.Resorts()
	if country := c.Query("country"); country != "" {
		resorts = config.ResortsByCountrySlug(country)
	} else if region := c.Query("region"); region != "" {
		resorts = config.ResortsByRegionSlug(region)
	}
	if len(resorts) == 0 {
		h.logger.WithFields(logrus.Fields{
			"country": c.Query("country"),
			"region":  c.Query("region"),
		}).Warn("Ranking requested for unknown group")
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown country or region"})
		return
	}

	holidays := h.holidays.FetchAll(c.Request.Context())
	rows := h.engine.Rank(c.Request.Context(), resorts, holidays)
	c.JSON(http.StatusOK, rows)
}

// GetResorts returns the static resort reference list.
func (h *Handler) GetResorts(c *gin.Context) {
	c.JSON(http.StatusOK, config.Resorts())
}

// ResortDetail is the full single-resort view for the detail pages.
type ResortDetail struct {
	Resort       *models.Resort        `json:"resort"`
	Snow         *models.SnowMetrics   `json:"snow"`
	Avalanche    AvalancheDetail       `json:"avalanche"`
	Crowd        models.CrowdEstimate  `json:"crowd"`
	Score        models.ScoreResult    `json:"score"`
	Trend7d      models.TrendDirection `json:"trend_7d"`
	TicketDetail string                `json:"ticket_detail"`
}

type AvalancheDetail struct {
	Level    int      `json:"level"`
	Label    string   `json:"label"`
	Source   string   `json:"source,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// GetResortDetail aggregates all sources for one resort. Snow, avalanche
// and holiday fetches run concurrently; any of them may degrade to absent
// data without failing the request.
func (h *Handler) GetResortDetail(c *gin.Context) {
	resort := config.ResortBySlug(c.Param("slug"))
	if resort == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown resort"})
		return
	}

	ctx := c.Request.Context()
	var (
		snow     *models.SnowMetrics
		rating   *models.AvalancheRating
		holidays []models.HolidayInterval
		wg       sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		snow = h.snow.FetchSnowMetrics(ctx, resort.Coordinates)
	}()
	go func() {
		defer wg.Done()
		var swiss *avalanche.SwissBulletins
		if resort.Country == "CH" {
			swiss = h.avalanche.FetchSwissBulletins(ctx)
		}
		rating = h.avalanche.Resolve(ctx, resort, swiss)
	}()
	go func() {
		defer wg.Done()
		holidays = h.holidays.FetchAll(ctx)
	}()
	wg.Wait()

	crowdEstimate := h.crowd.Estimate(holidays, resort.ImpactRegions)

	var depth, trend, depth3d, depth7d int
	var newSnow3d, avgTemp3d float64
	if snow != nil {
		depth = snow.CurrentDepth
		newSnow3d = snow.NewSnow3d
		avgTemp3d = snow.AvgTemp3d
		trend = snow.Trend
		depth3d = snow.Depth3d
		depth7d = snow.Depth7d
	} else {
		depth3d = depth
		depth7d = depth
	}

	score := scoring.Calculate(depth, newSnow3d, avgTemp3d, trend, crowdEstimate.Level)

	avalancheDetail := AvalancheDetail{Label: avalanche.LevelLabel(0)}
	if rating != nil {
		problems := make([]string, 0, len(rating.Problems))
		for _, p := range rating.Problems {
			problems = append(problems, avalanche.TranslateProblem(p))
		}
		avalancheDetail = AvalancheDetail{
			Level:    rating.Level,
			Label:    avalanche.LevelLabel(rating.Level),
			Source:   rating.Source,
			Problems: problems,
		}
	}

	c.JSON(http.StatusOK, ResortDetail{
		Resort:    resort,
		Snow:      snow,
		Avalanche: avalancheDetail,
		Crowd:     crowdEstimate,
		Score: models.ScoreResult{
			Score: score,
			Label: scoring.Label(score),
			Trend: scoring.TrendDirection(depth, depth3d),
		},
		Trend7d:      scoring.TrendDirection(depth, depth7d),
		TicketDetail: resort.Tickets.DisplayPriceDetail(),
	})
}

// GetCrowdOverview returns the site-wide crowd banner data.
func (h *Handler) GetCrowdOverview(c *gin.Context) {
	holidays := h.holidays.FetchAll(c.Request.Context())
	c.JSON(http.StatusOK, h.crowd.Overview(holidays))
}

// GetCrowdEstimate returns the standalone crowd estimate for one resort.
func (h *Handler) GetCrowdEstimate(c *gin.Context) {
	resort := config.ResortBySlug(c.Param("slug"))
	if resort == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown resort"})
		return
	}

	holidays := h.holidays.FetchAll(c.Request.Context())
	c.JSON(http.StatusOK, h.crowd.Estimate(holidays, resort.ImpactRegions))
}
