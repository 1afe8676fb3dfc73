package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	cartapp "github.com/dwikikusuma/foodstore/internal/cart/app"
	cartfile "github.com/dwikikusuma/foodstore/internal/cart/infra/file"
	catalogapp "github.com/dwikikusuma/foodstore/internal/catalog/app"
	catalogcache "github.com/dwikikusuma/foodstore/internal/catalog/infra/cache"
	catalogrest "github.com/dwikikusuma/foodstore/internal/catalog/infra/rest"
	checkoutapp "github.com/dwikikusuma/foodstore/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/foodstore/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/foodstore/internal/httpapi"
	"github.com/dwikikusuma/foodstore/pkg/config"
	"github.com/dwikikusuma/foodstore/pkg/logger"
	"github.com/dwikikusuma/foodstore/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Cart: file-backed persistence behind the in-memory store.
	cartStore := cartapp.NewStore(cartfile.NewStore(cfg.CartFile, log), log)

	// Catalog: REST client wrapped by the read-through cache.
	restClient := catalogrest.NewClient(
		&http.Client{Timeout: cfg.CatalogTimeout},
		catalogrest.Endpoints{
			FetchAll: cfg.FetchMenuURL,
			Create:   cfg.AddItemURL,
			Update:   cfg.UpdateItemURL,
			Delete:   cfg.DeleteItemURL,
		},
		log,
	)
	cachedRepo, err := catalogcache.New(restClient, cfg.CatalogCacheSize)
	if err != nil {
		log.Error("catalog cache init failed", slog.Any("err", err))
		return
	}
	catalogSvc := catalogapp.NewService(cachedRepo)

	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartStoreReader(cartStore),
		checkoutadapter.NewCatalogCacheReader(cachedRepo),
		10,
	)

	// Startup: hydrate the cart and warm the menu cache in parallel.
	// A failed preload is only a warning; the first request will retry.
	g, initCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cartStore.Hydrate(initCtx)
		return nil
	})
	g.Go(func() error {
		if _, err := catalogSvc.FetchAll(initCtx); err != nil {
			log.Warn("menu preload failed", slog.Any("err", err))
		}
		return nil
	})
	_ = g.Wait()

	api := httpapi.New(catalogSvc, cartStore, checkoutSvc, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	// Flush whatever cart snapshot is still pending before exit.
	if !shutdown.Drain(10*time.Second, cartStore.Close) {
		log.Warn("cart write-through drain timed out")
	}

	wg.Wait()
	log.Info("bye")
}
