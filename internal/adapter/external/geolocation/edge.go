package geolocation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/ipflix/ipflix/internal/entity"
	"github.com/mitchellh/mapstructure"
)

// Edge platform geolocation headers
const (
	HeaderEdgeCountry  = "x-vercel-ip-country"
	HeaderEdgeCity     = "x-vercel-ip-city"
	HeaderEdgeRegion   = "x-vercel-ip-country-region"
	HeaderEdgeTimezone = "x-vercel-ip-timezone"
)

type headersKey struct{}

// WithHeaders attaches the inbound request headers to ctx so the edge
// strategy can read them.
func WithHeaders(ctx context.Context, h http.Header) context.Context {
	return context.WithValue(ctx, headersKey{}, h)
}

func headersFrom(ctx context.Context) http.Header {
	h, _ := ctx.Value(headersKey{}).(http.Header)
	return h
}

// edgeHeaders is the typed view of the edge geolocation headers, decoded from
// the whole http.Header. Header keys match the tags case-insensitively.
type edgeHeaders struct {
	Country  string `mapstructure:"x-vercel-ip-country"`
	City     string `mapstructure:"x-vercel-ip-city"`
	Region   string `mapstructure:"x-vercel-ip-country-region"`
	Timezone string `mapstructure:"x-vercel-ip-timezone"`
}

// EdgeHeaders is the last resort strategy: the location the hosting edge
// attached to the inbound request.
type EdgeHeaders struct{}

// NewEdgeHeaders creates the edge header strategy
func NewEdgeHeaders() *EdgeHeaders {
	return &EdgeHeaders{}
}

// Name returns the provider name
func (e *EdgeHeaders) Name() string {
	return "edge-headers"
}

// Locate implements Strategy. It answers only when a country header exists.
func (e *EdgeHeaders) Locate(ctx context.Context, _ string) (*entity.GeoLocation, error) {
	h := headersFrom(ctx)
	if h == nil {
		return nil, ErrNoLocation
	}

	eh, err := decodeEdgeHeaders(h)
	if err != nil {
		return nil, err
	}
	if eh.Country == "" {
		return nil, ErrNoLocation
	}

	return &entity.GeoLocation{
		Country:     eh.Country,
		CountryCode: eh.Country,
		City:        decodeComponent(eh.City),
		Region:      decodeComponent(eh.Region),
		Timezone:    orDefault(eh.Timezone, entity.DefaultTimezone),
	}, nil
}

func decodeEdgeHeaders(h http.Header) (edgeHeaders, error) {
	var eh edgeHeaders
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: firstHeaderValue,
		Result:     &eh,
	})
	if err != nil {
		return eh, fmt.Errorf("edge header decoder: %w", err)
	}
	if err := decoder.Decode(map[string][]string(h)); err != nil {
		return eh, fmt.Errorf("decode edge headers: %w", err)
	}
	return eh, nil
}

// firstHeaderValue collapses a header value list to its first entry, like
// http.Header.Get
func firstHeaderValue(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Slice || to.Kind() != reflect.String {
		return data, nil
	}
	values, ok := data.([]string)
	if !ok {
		return data, nil
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

// decodeComponent URL-decodes v, keeping the raw value if it is malformed
func decodeComponent(v string) string {
	if v == "" {
		return entity.UnknownValue
	}
	decoded, err := url.PathUnescape(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	return decoded
}
