package meteo

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"schneelage/server/internal/models"
)

// Client fetches snow and temperature forecasts from Open-Meteo.
type Client struct {
	baseURL string
	client  *resty.Client
	logger  *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  resty.New().SetTimeout(timeout),
		logger:  logger,
	}
}

// ForecastResponse is the subset of the Open-Meteo payload the engine
// consumes: hourly snow depth in meters plus daily snowfall sums and
// temperature extremes over a 7-day horizon.
type ForecastResponse struct {
	Hourly struct {
		SnowDepth []float64 `json:"snow_depth"`
		Snowfall  []float64 `json:"snowfall"`
	} `json:"hourly"`
	Daily struct {
		Time           []string  `json:"time"`
		SnowfallSum    []float64 `json:"snowfall_sum"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// FetchSnowMetrics returns the normalized snow summary for a coordinate,
// or nil when the upstream call fails in any way. Callers treat nil as
// all-zero metrics; a failed forecast never aborts a ranking.
func (c *Client) FetchSnowMetrics(ctx context.Context, point orb.Point) *models.SnowMetrics {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":      strconv.FormatFloat(point.Lat(), 'f', -1, 64),
			"longitude":     strconv.FormatFloat(point.Lon(), 'f', -1, 64),
			"hourly":        "snow_depth,snowfall",
			"daily":         "snowfall_sum,temperature_2m_max,temperature_2m_min",
			"timezone":      "Europe/Berlin",
			"forecast_days": "7",
		}).
		Get(c.baseURL)
	if err != nil {
		c.logger.WithError(err).WithField("lat", point.Lat()).Warn("Snow forecast request failed")
		return nil
	}
	if resp.IsError() {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode(),
			"lat":    point.Lat(),
			"lon":    point.Lon(),
		}).Warn("Snow forecast returned non-success status")
		return nil
	}

	var raw ForecastResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		c.logger.WithError(err).Warn("Failed to parse snow forecast response")
		return nil
	}

	return Normalize(&raw)
}

// Normalize turns a raw forecast response into SnowMetrics. Pure function:
// identical input yields identical output.
func Normalize(raw *ForecastResponse) *models.SnowMetrics {
	depths := raw.Hourly.SnowDepth

	var currentDepth float64
	if len(depths) > 0 {
		currentDepth = depths[0]
	}
	currentDepthCm := int(math.Round(currentDepth * 100))

	// Depth at +3 days is the hour-72 sample when the series reaches that
	// far, otherwise the last available sample.
	var depth3d float64
	if len(depths) > 72 {
		depth3d = depths[72]
	} else if len(depths) > 0 {
		depth3d = depths[len(depths)-1]
	}
	depth3dCm := int(math.Round(depth3d * 100))

	var depth7d float64
	if len(depths) > 0 {
		depth7d = depths[len(depths)-1]
	}
	depth7dCm := int(math.Round(depth7d * 100))

	var newSnow3d float64
	for i := 0; i < len(raw.Daily.SnowfallSum) && i < 3; i++ {
		newSnow3d += raw.Daily.SnowfallSum[i]
	}
	newSnow3d = round1(newSnow3d)

	snowfallDaily := make([]float64, len(raw.Daily.SnowfallSum))
	for i, v := range raw.Daily.SnowfallSum {
		snowfallDaily[i] = round1(v)
	}

	maxTemps := raw.Daily.TemperatureMax
	minTemps := raw.Daily.TemperatureMin
	var tempSum float64
	tempCount := 0
	for i := 0; i < len(maxTemps) && i < 3; i++ {
		var minT float64
		if i < len(minTemps) {
			minT = minTemps[i]
		}
		tempSum += (maxTemps[i] + minT) / 2
		tempCount++
	}
	avgTemp3d := 0.0
	if tempCount > 0 {
		avgTemp3d = round1(tempSum / float64(tempCount))
	}

	return &models.SnowMetrics{
		CurrentDepth:  currentDepthCm,
		Depth3d:       depth3dCm,
		Depth7d:       depth7dCm,
		NewSnow3d:     newSnow3d,
		SnowfallDaily: snowfallDaily,
		AvgTemp3d:     avgTemp3d,
		Trend:         depth3dCm - currentDepthCm,
		MaxTemps:      maxTemps,
		MinTemps:      minTemps,
		DailyDates:    raw.Daily.Time,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
