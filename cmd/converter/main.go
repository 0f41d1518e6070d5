package main

import (
	"context"
	"os"

	"usd_converter/internal/app"
	"usd_converter/internal/cache"
	"usd_converter/internal/config"
	"usd_converter/internal/external"
	"usd_converter/internal/logger"
	"usd_converter/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	entry := log.ForRun()

	rateCache := cache.NewFileCache(cfg.Cache.File, cfg.Cache.Expiry)
	client := external.New(&cfg.External, entry)
	rates := service.NewRatesService(rateCache, client, service.Options{
		MaxRetries: cfg.Retry.MaxRetries,
		RetryDelay: cfg.Retry.Delay,
	}, entry)

	a := app.New(rates, cfg.App.Currencies, entry)
	if err := a.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		entry.WithError(err).Fatal("Conversion failed")
	}
}
