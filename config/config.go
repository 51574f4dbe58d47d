package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port string `env:"PORT" envDefault:"5250"`

		// Timeout for every upstream HTTP request (in seconds)
		HTTPTimeout int `env:"HTTP_TIMEOUT" envDefault:"10"`
	}

	// Upstream data sources. Plain values: the endpoints are public and
	// carry no credentials.
	Upstream struct {
		// Open-Meteo forecast endpoint (snow depth, snowfall, temperature)
		MeteoBaseURL string `env:"METEO_BASE_URL" envDefault:"https://api.open-meteo.com/v1/forecast"`

		// EAWS bulletin archive (macro-region danger ratings, AT/DE)
		EAWSBaseURL string `env:"EAWS_BASE_URL" envDefault:"https://static.avalanche.report/eaws_bulletins"`

		// SLF Swiss avalanche bulletin (CAAML JSON)
		SLFBulletinURL string `env:"SLF_BULLETIN_URL" envDefault:"https://aws.slf.ch/api/bulletin/caaml/de/json"`

		// OpenHolidays API (school holiday calendars)
		HolidayBaseURL string `env:"HOLIDAY_BASE_URL" envDefault:"https://openholidaysapi.org"`

		// Language for localized holiday names
		HolidayLanguage string `env:"HOLIDAY_LANGUAGE" envDefault:"DE"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
