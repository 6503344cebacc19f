// Package ipclass classifies client IP strings before any upstream lookup.
//
// Classification is by textual prefix, not CIDR containment. IPv6 is only
// recognised through the "::1" loopback literal.
package ipclass

import "strings"

// privatePrefixes are the RFC1918 and loopback prefixes treated as private.
// Each /16 of 172.16.0.0/12 is listed individually.
var privatePrefixes = []string{
	"127.",
	"10.",
	"192.168.",
	"172.16.", "172.17.", "172.18.", "172.19.",
	"172.20.", "172.21.", "172.22.", "172.23.",
	"172.24.", "172.25.", "172.26.", "172.27.",
	"172.28.", "172.29.", "172.30.", "172.31.",
}

// nonRoutablePrefixes is the looser set used for geolocation; it rejects the
// whole 172. prefix.
var nonRoutablePrefixes = []string{"127.", "10.", "192.168.", "172."}

// IsPrivateIP reports whether ip is empty, unspecified, loopback or in a
// private IPv4 range. Private IPs never reach an upstream provider.
func IsPrivateIP(ip string) bool {
	if isReservedLiteral(ip) {
		return true
	}
	return hasAnyPrefix(ip, privatePrefixes)
}

// IsValidIP reports whether ip is worth geolocating.
func IsValidIP(ip string) bool {
	if isReservedLiteral(ip) {
		return false
	}
	return !hasAnyPrefix(ip, nonRoutablePrefixes)
}

// Version returns "IPv6" when ip contains a colon, "IPv4" otherwise.
func Version(ip string) string {
	if strings.Contains(ip, ":") {
		return "IPv6"
	}
	return "IPv4"
}

func isReservedLiteral(ip string) bool {
	return ip == "" || ip == "0.0.0.0" || ip == "::1"
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
