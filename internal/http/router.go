package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/storelocator/backend/internal/catalog"
	"github.com/storelocator/backend/internal/config"
	"github.com/storelocator/backend/internal/geocode"
	"github.com/storelocator/backend/internal/http/handlers"
	"github.com/storelocator/backend/internal/http/middleware"
	"github.com/storelocator/backend/internal/service"

	_ "github.com/storelocator/backend/docs"
)

type Deps struct {
	Catalog   *catalog.Catalog
	Reference *geocode.ReferenceTable
	Resolver  *service.Resolver
	Session   *service.Session
	// Store is nil when no database is configured.
	Store handlers.CatalogStore
}

func Router(cfg config.Config, deps Deps, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.AdminKeyHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Catalog:   deps.Catalog,
		Reference: deps.Reference,
		Resolver:  deps.Resolver,
		Session:   deps.Session,
		Store:     deps.Store,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/stores", h.StoresList)
		api.GET("/stores/export", h.StoresExport)
		api.GET("/stores/:id", h.StoreDetails)
		api.GET("/stores/:id/directions", h.StoreDirections)
		api.GET("/reference-postcodes", h.ReferencePostcodes)
		api.GET("/search", h.Search)

		api.GET("/map", h.MapState)
		api.POST("/map/search", h.MapSearch)
		api.POST("/map/select", h.MapSelect)
		api.PUT("/map/viewport", h.MapViewport)
		api.PUT("/map/tile-layer", h.MapTileLayer)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/import", h.Import)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
