package main

import (
	"context"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"taskboard-api/api"
	"taskboard-api/config"
	"taskboard-api/storage"
	"taskboard-api/web"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(os.Getenv("TASKBOARD_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := storage.New(context.Background(), cfg.Database.Path)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	logger := log.New()
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, api.HeaderOrgID, api.HeaderUserID},
	}))
	e.Use(middleware.BodyLimit("1M"))

	auth := api.HeaderAuth{Production: cfg.Production()}
	api.Register(e, api.Config{
		Store:      store,
		Auth:       auth,
		Logger:     logger,
		Production: cfg.Production(),
	})
	if err := web.Register(e, store, auth); err != nil {
		log.Fatalf("views: %v", err)
	}

	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
