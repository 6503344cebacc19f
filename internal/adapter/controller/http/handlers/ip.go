package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ipflix/ipflix/internal/adapter/controller/http/middleware"
	"github.com/ipflix/ipflix/internal/adapter/external/geolocation"
	"github.com/ipflix/ipflix/internal/entity"
)

// IntelService is the lookup surface used by the HTTP handlers
type IntelService interface {
	ClientInfo(ctx context.Context, ip, userAgent string) entity.ClientInfo
	NetworkDetails(ctx context.Context, ip string) entity.NetworkDetailsResponse
	Threat(ctx context.Context, ip string) entity.ThreatReport
	OSINT(ctx context.Context, ip string) entity.OSINTResult
}

// IPHandler serves the caller-describing endpoints
type IPHandler struct {
	service IntelService
	logger  *slog.Logger
}

// NewIPHandler creates a new IP handler
func NewIPHandler(service IntelService, logger *slog.Logger) *IPHandler {
	return &IPHandler{service: service, logger: logger}
}

// PlainIP returns the caller's address as text, for curl
// GET /ip
func (h *IPHandler) PlainIP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.logger.Error("IP endpoint error", "panic", rec)
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Error retrieving IP"))
		}
	}()

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(middleware.GetClientIP(r)))
}

// ClientInfo returns the caller's address, location and browser
// GET /api/ip
func (h *IPHandler) ClientInfo(w http.ResponseWriter, r *http.Request) {
	defer recoverJSON(w, r, h.logger, "Failed to retrieve IP information")

	// The edge headers strategy reads the inbound headers from the context
	ctx := geolocation.WithHeaders(r.Context(), r.Header)
	info := h.service.ClientInfo(ctx, middleware.GetClientIP(r), r.UserAgent())

	JSONResponse(w, http.StatusOK, info)
}
