package holidays

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"schneelage/server/internal/models"
)

// Countries whose school holidays can drive cross-border ski traffic.
var Countries = []string{"AT", "DE", "CH", "NL", "BE"}

// Aggregator fetches school-holiday calendars from the OpenHolidays API
// for all relevant countries and merges them into one interval set. One
// merged fetch serves a whole ranking request.
type Aggregator struct {
	baseURL  string
	language string
	client   *resty.Client
	logger   *logrus.Logger

	// Now bounds the query window [today, today+7d]. Tests pin it.
	Now func() time.Time
}

func NewAggregator(baseURL, language string, timeout time.Duration, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		baseURL:  baseURL,
		language: language,
		client:   resty.New().SetTimeout(timeout),
		logger:   logger,
		Now:      time.Now,
	}
}

// rawHoliday mirrors one OpenHolidays SchoolHolidays entry.
type rawHoliday struct {
	StartDate    string                 `json:"startDate"`
	EndDate      string                 `json:"endDate"`
	Subdivisions []models.Subdivision   `json:"subdivisions"`
	Name         []models.LocalizedText `json:"name"`
}

// FetchAll queries every country's calendar concurrently and concatenates
// the results, each interval tagged with its source country. A failing
// country degrades to an empty list and never affects the others.
func (a *Aggregator) FetchAll(ctx context.Context) []models.HolidayInterval {
	now := a.Now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, 7).Format("2006-01-02")

	results := make([][]models.HolidayInterval, len(Countries))
	var wg sync.WaitGroup
	for i, country := range Countries {
		wg.Add(1)
		go func(i int, country string) {
			defer wg.Done()
			results[i] = a.fetchCountry(ctx, country, from, to)
		}(i, country)
	}
	wg.Wait()

	var all []models.HolidayInterval
	for _, intervals := range results {
		all = append(all, intervals...)
	}
	return all
}

func (a *Aggregator) fetchCountry(ctx context.Context, country, from, to string) []models.HolidayInterval {
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"countryIsoCode":  country,
			"validFrom":       from,
			"validTo":         to,
			"languageIsoCode": a.language,
		}).
		Get(a.baseURL + "/SchoolHolidays")
	if err != nil {
		a.logger.WithError(err).WithField("country", country).Warn("Holiday calendar request failed")
		return nil
	}
	if resp.IsError() {
		a.logger.WithFields(logrus.Fields{
			"status":  resp.StatusCode(),
			"country": country,
		}).Warn("Holiday calendar returned non-success status")
		return nil
	}

	var raw []rawHoliday
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		a.logger.WithError(err).WithField("country", country).Warn("Failed to parse holiday calendar response")
		return nil
	}

	intervals := make([]models.HolidayInterval, 0, len(raw))
	for _, h := range raw {
		intervals = append(intervals, models.HolidayInterval{
			Country:      country,
			StartDate:    h.StartDate,
			EndDate:      h.EndDate,
			Subdivisions: h.Subdivisions,
			Names:        h.Name,
		})
	}
	return intervals
}
