// Package app assembles the upstream clients, geolocation chain and intel
// service from configuration. The API server and the CLI share it.
package app

import (
	"log/slog"

	"github.com/ipflix/ipflix/internal/adapter/external/geolocation"
	"github.com/ipflix/ipflix/internal/adapter/external/httpcache"
	"github.com/ipflix/ipflix/internal/adapter/external/threatintel"
	"github.com/ipflix/ipflix/internal/config"
	"github.com/ipflix/ipflix/internal/usecase/intel"
)

// App holds the wired components
type App struct {
	Service  *intel.Service
	Resolver *geolocation.Resolver
	Cache    *httpcache.Transport

	maxmind *geolocation.MaxMind
	logger  *slog.Logger
}

// New wires every component. A configured but unreadable GeoIP database is
// logged and skipped.
func New(cfg *config.Config, logger *slog.Logger) *App {
	client, cache := httpcache.NewClient(cfg.Providers.HTTPTimeout, cfg.Providers.CacheTTL)

	ipapiCo := geolocation.NewIPAPICoClient(cfg.Providers.IPAPICoBaseURL, client)
	strategies := []geolocation.Strategy{
		ipapiCo,
		geolocation.NewIPAPIComClient(cfg.Providers.IPAPIComBaseURL, client),
	}

	a := &App{Cache: cache, logger: logger}

	mm, err := geolocation.OpenMaxMind(cfg.GeoIP.DBPath, logger)
	if err != nil {
		logger.Warn("GeoIP database disabled", "path", cfg.GeoIP.DBPath, "error", err)
	} else if mm != nil {
		a.maxmind = mm
		strategies = append(strategies, mm)
		logger.Info("GeoIP database loaded", "path", cfg.GeoIP.DBPath)
	}
	strategies = append(strategies, geolocation.NewEdgeHeaders())

	a.Resolver = geolocation.NewResolver(logger, strategies...)

	abuse := threatintel.NewAbuseIPDBClient(threatintel.AbuseIPDBConfig{
		APIKey:     cfg.Providers.AbuseIPDBKey,
		BaseURL:    cfg.Providers.AbuseIPDBBaseURL,
		HTTPClient: client,
	})
	if !abuse.IsConfigured() {
		logger.Info("AbuseIPDB disabled (no API key)")
	}

	a.Service = intel.NewService(intel.Dependencies{
		Geo:     a.Resolver,
		Network: ipapiCo,
		Threat: threatintel.NewIPAPIISClient(threatintel.IPAPIISConfig{
			BaseURL:    cfg.Providers.IPAPIISBaseURL,
			HTTPClient: client,
		}),
		Shodan: threatintel.NewShodanInternetDBClient(threatintel.ShodanInternetDBConfig{
			BaseURL:    cfg.Providers.ShodanInternetDBBaseURL,
			HTTPClient: client,
		}),
		Abuse: abuse,
	}, logger)

	return a
}

// GeolocationChain returns the strategy names in resolution order
func (a *App) GeolocationChain() []string {
	strategies := a.Resolver.Strategies()
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}
	return names
}

// Close releases the cache janitor and the GeoIP database
func (a *App) Close() {
	a.Cache.Close()
	if a.maxmind != nil {
		if err := a.maxmind.Close(); err != nil {
			a.logger.Warn("Closing GeoIP database", "error", err)
		}
	}
}
