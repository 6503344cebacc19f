package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/ipflix/ipflix/internal/adapter/external/httpcache"
)

var startTime = time.Now()

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string           `json:"status"`
	Version     string           `json:"version"`
	Uptime      string           `json:"uptime"`
	Environment string           `json:"environment"`
	Timestamp   time.Time        `json:"timestamp"`
	Geolocation []string         `json:"geolocation"`
	Cache       *httpcache.Stats `json:"cache,omitempty"`
	System      SystemInfo       `json:"system"`
}

// SystemInfo represents system information
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
}

// CacheStats is implemented by the upstream response cache
type CacheStats interface {
	Stats() httpcache.Stats
}

// HealthInfo is the static part of the health report
type HealthInfo struct {
	Version     string
	Environment string
	// Geolocation strategy names in chain order
	Geolocation []string
	Cache       CacheStats
}

// HealthCheck returns a handler for health check endpoint
func HealthCheck(info HealthInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		response := HealthResponse{
			Status:      "healthy",
			Version:     info.Version,
			Uptime:      time.Since(startTime).Round(time.Second).String(),
			Environment: info.Environment,
			Timestamp:   time.Now().UTC(),
			Geolocation: info.Geolocation,
			System: SystemInfo{
				GoVersion:    runtime.Version(),
				NumCPU:       runtime.NumCPU(),
				NumGoroutine: runtime.NumGoroutine(),
				MemAllocMB:   m.Alloc / 1024 / 1024,
			},
		}
		if response.Geolocation == nil {
			response.Geolocation = []string{}
		}
		if info.Cache != nil {
			stats := info.Cache.Stats()
			response.Cache = &stats
		}

		JSONResponse(w, http.StatusOK, response)
	}
}
