// Package intel orchestrates the per-IP lookups behind the HTTP endpoints and
// the CLI: geolocation, network ownership, threat reputation and OSINT.
package intel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ipflix/ipflix/internal/adapter/external/threatintel"
	"github.com/ipflix/ipflix/internal/domain/ipclass"
	"github.com/ipflix/ipflix/internal/domain/scoring"
	"github.com/ipflix/ipflix/internal/domain/useragent"
	"github.com/ipflix/ipflix/internal/entity"
)

// GeoResolver resolves an IP through the geolocation chain
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) *entity.GeoLocation
}

// NetworkProvider looks up who owns an IP's network
type NetworkProvider interface {
	NetworkDetails(ctx context.Context, ip string) (*entity.NetworkDetails, error)
}

// ThreatProvider supplies threat flags and ASN details
type ThreatProvider interface {
	ThreatIntelligence(ctx context.Context, ip string) (*entity.ThreatIntelligence, error)
	ASNDetails(ctx context.Context, ip string) (*entity.ASNDetails, error)
}

// ShodanProvider supplies exposed-service data
type ShodanProvider interface {
	CheckIP(ctx context.Context, ip string) (*entity.ShodanData, error)
}

// AbuseProvider supplies abuse-report data
type AbuseProvider interface {
	CheckIP(ctx context.Context, ip string) (*entity.AbuseIPDBData, error)
}

// Dependencies groups the upstream providers used by the service
type Dependencies struct {
	Geo     GeoResolver
	Network NetworkProvider
	Threat  ThreatProvider
	Shodan  ShodanProvider
	Abuse   AbuseProvider
}

// Service answers IP intelligence queries. It never returns provider
// errors: a failed lookup becomes a nil or sentinel sub-result.
type Service struct {
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new intel service
func NewService(deps Dependencies, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

// ClientInfo describes the caller: address, location and browser.
// Location falls back to the unknown sentinel when the chain yields nothing.
func (s *Service) ClientInfo(ctx context.Context, ip, userAgent string) entity.ClientInfo {
	geo := entity.UnknownGeoLocation()
	if s.deps.Geo != nil {
		if g := s.deps.Geo.Resolve(ctx, ip); g != nil {
			geo = *g
		}
	}

	ua := useragent.Parse(userAgent)
	return entity.ClientInfo{
		IP:          ip,
		IPVersion:   ipclass.Version(ip),
		GeoLocation: geo,
		UserAgent:   userAgent,
		Browser:     ua.Browser,
		OS:          ua.OS,
		Device:      ua.Device,
		Timestamp:   s.now().UTC().Format(time.RFC3339Nano),
	}
}

// NetworkDetails returns the network owner of ip with the placeholder
// security block.
func (s *Service) NetworkDetails(ctx context.Context, ip string) entity.NetworkDetailsResponse {
	resp := entity.NetworkDetailsResponse{}

	switch {
	case !ipclass.IsValidIP(ip):
		s.logger.Debug("Skipping network info for invalid/private IP", "ip", ip)
		resp.NetworkDetails = entity.PrivateNetworkDetails()
	case s.deps.Network == nil:
		resp.NetworkDetails = entity.UnknownNetworkDetails()
	default:
		nd, err := s.deps.Network.NetworkDetails(ctx, ip)
		if err != nil || nd == nil {
			s.logger.Warn("Network details lookup failed", "ip", ip, "error", err)
			resp.NetworkDetails = entity.UnknownNetworkDetails()
		} else {
			resp.NetworkDetails = *nd
		}
	}

	return resp
}

// Threat returns the threat reputation and ASN of ip. Both lookups run
// concurrently; either half is nil when its lookup failed.
func (s *Service) Threat(ctx context.Context, ip string) entity.ThreatReport {
	if ipclass.IsPrivateIP(ip) {
		return entity.ThreatReport{
			Threat: entity.PrivateThreatIntelligence(),
			ASN:    entity.PrivateASNDetails(),
		}
	}

	var (
		report entity.ThreatReport
		wg     sync.WaitGroup
	)
	if s.deps.Threat == nil {
		return report
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		ti, err := s.deps.Threat.ThreatIntelligence(ctx, ip)
		if err != nil {
			s.logger.Error("Threat intelligence lookup failed", "ip", ip, "error", err)
			return
		}
		report.Threat = ti
	}()
	go func() {
		defer wg.Done()
		asn, err := s.deps.Threat.ASNDetails(ctx, ip)
		if err != nil {
			s.logger.Error("ASN lookup failed", "ip", ip, "error", err)
			return
		}
		report.ASN = asn
	}()
	wg.Wait()

	return report
}

// OSINT gathers Shodan and AbuseIPDB data concurrently and scores them.
func (s *Service) OSINT(ctx context.Context, ip string) entity.OSINTResult {
	var (
		shodan *entity.ShodanData
		abuse  *entity.AbuseIPDBData
	)

	if ipclass.IsPrivateIP(ip) {
		shodan = entity.EmptyShodanData()
		abuse = entity.PrivateAbuseIPDBData()
	} else {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			shodan = s.checkShodan(ctx, ip)
		}()
		go func() {
			defer wg.Done()
			abuse = s.checkAbuse(ctx, ip)
		}()
		wg.Wait()
	}

	score := scoring.ScoreOSINT(shodan, abuse)
	return entity.OSINTResult{
		Shodan:          shodan,
		AbuseIPDB:       abuse,
		RiskScore:       score.Score,
		RiskLevel:       score.Level,
		Recommendations: score.Recommendations,
	}
}

func (s *Service) checkShodan(ctx context.Context, ip string) *entity.ShodanData {
	if s.deps.Shodan == nil {
		return nil
	}
	data, err := s.deps.Shodan.CheckIP(ctx, ip)
	if err != nil {
		s.logger.Error("Shodan InternetDB lookup failed", "ip", ip, "error", err)
		return nil
	}
	return data
}

func (s *Service) checkAbuse(ctx context.Context, ip string) *entity.AbuseIPDBData {
	if s.deps.Abuse == nil {
		return nil
	}
	data, err := s.deps.Abuse.CheckIP(ctx, ip)
	if errors.Is(err, threatintel.ErrNotConfigured) {
		return nil
	}
	if err != nil {
		s.logger.Error("AbuseIPDB lookup failed", "ip", ip, "error", err)
		return nil
	}
	return data
}
