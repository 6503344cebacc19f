// Package geolocation resolves an IP to a location through an ordered chain
// of providers. The first provider that answers wins.
package geolocation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ipflix/ipflix/internal/domain/ipclass"
	"github.com/ipflix/ipflix/internal/entity"
)

// ErrNoLocation is returned by a strategy that has nothing to say about an IP
var ErrNoLocation = errors.New("no location available")

// Strategy is one step of the fallback chain
type Strategy interface {
	Name() string
	Locate(ctx context.Context, ip string) (*entity.GeoLocation, error)
}

// Resolver tries its strategies in order
type Resolver struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewResolver creates a resolver over strategies, tried in the given order
func NewResolver(logger *slog.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		strategies: strategies,
		logger:     logger,
	}
}

// Strategies returns the configured chain
func (r *Resolver) Strategies() []Strategy {
	return r.strategies
}

// Resolve returns the location from the first strategy that succeeds, or nil
// when ip is private/invalid or every strategy fails. Failures are logged and
// never retried.
func (r *Resolver) Resolve(ctx context.Context, ip string) *entity.GeoLocation {
	if !ipclass.IsValidIP(ip) {
		r.logger.Debug("Skipping geolocation for invalid/private IP", "ip", ip)
		return nil
	}

	for _, s := range r.strategies {
		geo, err := s.Locate(ctx, ip)
		if err == nil && geo != nil {
			geo.Source = s.Name()
			return geo
		}
		if ctx.Err() != nil {
			r.logger.Warn("Geolocation aborted", "ip", ip, "provider", s.Name(), "error", ctx.Err())
			return nil
		}
		r.logger.Warn("Geolocation provider failed", "ip", ip, "provider", s.Name(), "error", err)
	}

	return nil
}
