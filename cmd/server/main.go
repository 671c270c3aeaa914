package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/storelocator/backend/internal/catalog"
	"github.com/storelocator/backend/internal/config"
	"github.com/storelocator/backend/internal/db"
	"github.com/storelocator/backend/internal/geocode"
	httpapi "github.com/storelocator/backend/internal/http"
	"github.com/storelocator/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "store-locator").Logger()

	ctx := context.Background()

	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
	}

	cat, err := loadCatalog(ctx, cfg, store)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("failed to load catalog")
	}
	ref, err := loadReference(ctx, cfg, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load reference postcodes")
	}
	logger.Info().
		Str("source", cfg.CatalogSource).
		Int("stores", cat.Len()).
		Int("reference_postcodes", ref.Len()).
		Msg("catalog loaded")

	resolver := service.NewResolver(cat, ref, cfg.SearchLimit)
	deps := httpapi.Deps{
		Catalog:   cat,
		Reference: ref,
		Resolver:  resolver,
		Session:   service.NewSession(resolver, cfg.MapConfig(), logger),
	}
	if store != nil {
		deps.Store = store
	}

	router := httpapi.Router(cfg, deps, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}

func loadCatalog(ctx context.Context, cfg config.Config, store *db.Store) (*catalog.Catalog, error) {
	if cfg.CatalogSource == config.CatalogSourcePostgres {
		return catalog.LoadFrom(ctx, store)
	}
	return catalog.Load(cfg.CatalogPath)
}

// loadReference prefers an explicit file, then rows persisted alongside a
// postgres catalog, then the built-in table. A file table is written through
// to the database when one is configured.
func loadReference(ctx context.Context, cfg config.Config, store *db.Store) (*geocode.ReferenceTable, error) {
	if cfg.ReferencePostcodesPath != "" {
		ref, err := geocode.LoadReferenceTable(cfg.ReferencePostcodesPath)
		if err != nil {
			return nil, err
		}
		if store != nil {
			if err := store.UpsertReferencePostcodes(ctx, ref.Entries()); err != nil {
				return nil, err
			}
		}
		return ref, nil
	}
	if cfg.CatalogSource == config.CatalogSourcePostgres && store != nil {
		items, err := store.ListReferencePostcodes(ctx)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return geocode.NewReferenceTable(items)
		}
	}
	return geocode.DefaultReferenceTable(), nil
}
