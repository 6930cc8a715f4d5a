package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"crimeboard/internal/api"
	"crimeboard/internal/config"
	"crimeboard/internal/engine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// The API goes live immediately; data routes answer 503 until the
	// background load publishes the dataset.
	h := api.NewHandler(cfg, logger)
	h.RegisterRoutes(e)

	go func() {
		t0 := time.Now()
		ds, err := engine.LoadDataset(cfg.DataPath, logger)
		if err != nil {
			logger.Fatal("initial load failed", zap.Error(err))
		}
		h.SetDataset(ds)
		logger.Info("background load complete, API fully ready",
			zap.Duration("elapsed", time.Since(t0)))
	}()

	logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
