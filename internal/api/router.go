// Package api wires the HTTP handlers, middleware and static front-end into a gin engine.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/khristian7/Irradiation-Portal/internal/api/handlers"
	"github.com/khristian7/Irradiation-Portal/internal/api/middleware"
	"github.com/khristian7/Irradiation-Portal/internal/config"
	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/log"
	"github.com/khristian7/Irradiation-Portal/internal/model"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine for cfg. cache may be nil.
func NewRouter(cfg *config.Config, cache *data.SeriesCache) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	granularity, err := model.ParseGranularity(cfg.Defaults.Granularity)
	if err != nil {
		granularity = model.GranularityDaily
	}
	irradianceHandler := handlers.NewIrradianceHandler(handlers.Options{
		MaxRangeDays:       cfg.Limits.MaxRangeDays,
		Workers:            cfg.Limits.Workers,
		DefaultGranularity: granularity,
		Cache:              cache,
	})
	locationsHandler := handlers.NewLocationsHandler(cfg.LocationsFile)
	rankHandler := handlers.NewRankHandler(locationsHandler, cfg.Limits.Workers)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/model", irradianceHandler.Model)
		api.POST("/export", irradianceHandler.Export)
		api.GET("/position", irradianceHandler.Position)
		api.GET("/summary", irradianceHandler.Summary)

		api.GET("/locations", locationsHandler.ListLocations)
		api.GET("/granularities", handlers.ListGranularities)
		api.GET("/rank", rankHandler.RankSites)
	}

	serveStatic(router, cfg.Server.StaticDir)
	return router
}

// serveStatic serves the single-page front-end from dir when it exists.
// Unknown non-API paths fall back to index.html.
func serveStatic(router *gin.Engine, dir string) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	}
	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Infof("Static directory %s not found, skipping static file serving", dir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	index := filepath.Join(dir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	log.Infof("Serving static files from %s", dir)
}
