package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"schneelage/server/config"
	"schneelage/server/internal/api"
	"schneelage/server/internal/avalanche"
	"schneelage/server/internal/crowd"
	"schneelage/server/internal/holidays"
	"schneelage/server/internal/meteo"
	"schneelage/server/internal/ranking"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := config.LoadResorts(); err != nil {
		logger.WithError(err).Fatal("Failed to load resort reference data")
	}
	logger.Infof("Loaded %d resorts", len(config.Resorts()))

	timeout := time.Duration(cfg.Server.HTTPTimeout) * time.Second

	snowClient := meteo.NewClient(cfg.Upstream.MeteoBaseURL, timeout, logger)
	resolver := avalanche.NewResolver(cfg.Upstream.EAWSBaseURL, cfg.Upstream.SLFBulletinURL, timeout, logger)
	aggregator := holidays.NewAggregator(cfg.Upstream.HolidayBaseURL, cfg.Upstream.HolidayLanguage, timeout, logger)
	estimator := crowd.NewEstimator(cfg.Upstream.HolidayLanguage)

	engine := ranking.NewEngine(snowClient, resolver, estimator, logger)
	handler := api.NewHandler(engine, snowClient, resolver, aggregator, estimator, logger)

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
