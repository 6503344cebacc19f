package handlers

import (
	"log/slog"
	"net/http"
)

// IntelHandler serves lookups of an explicit IP
type IntelHandler struct {
	service IntelService
	logger  *slog.Logger
}

// NewIntelHandler creates a new intel handler
func NewIntelHandler(service IntelService, logger *slog.Logger) *IntelHandler {
	return &IntelHandler{service: service, logger: logger}
}

// Details returns the network owner of an IP
// GET /api/ip/details?ip=
func (h *IntelHandler) Details(w http.ResponseWriter, r *http.Request) {
	defer recoverJSON(w, r, h.logger, "Failed to retrieve detailed IP information")

	ip, ok := requiredIP(w, r)
	if !ok {
		return
	}

	JSONResponse(w, http.StatusOK, h.service.NetworkDetails(r.Context(), ip))
}

// Threat returns threat reputation and ASN details
// GET /api/ip/threat?ip=
func (h *IntelHandler) Threat(w http.ResponseWriter, r *http.Request) {
	defer recoverJSON(w, r, h.logger, "Failed to retrieve threat intelligence")

	ip, ok := requiredIP(w, r)
	if !ok {
		return
	}

	JSONResponse(w, http.StatusOK, h.service.Threat(r.Context(), ip))
}

// OSINT returns exposure and abuse data with a risk score
// GET /api/osint?ip=
func (h *IntelHandler) OSINT(w http.ResponseWriter, r *http.Request) {
	defer recoverJSON(w, r, h.logger, "Failed to retrieve OSINT intelligence")

	ip, ok := requiredIP(w, r)
	if !ok {
		return
	}

	JSONResponse(w, http.StatusOK, h.service.OSINT(r.Context(), ip))
}
