package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

const unknownCountry = "ZZ"

// Edge headers in order of trust. Fly and Cloudflare set them on every
// request; X-Forwarded-For is only as good as the last proxy.
var (
	clientIPHeaders = []string{"Fly-Client-IP", "CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}
	countryHeaders  = []string{"Fly-Client-Country", "CF-IPCountry", "X-Vercel-IP-Country", "CloudFront-Viewer-Country"}
)

func resolveClientIP(r *http.Request) string {
	for _, h := range clientIPHeaders {
		if addr, ok := parseClientAddr(firstListItem(r.Header.Get(h))); ok {
			return addr.String()
		}
	}
	if addr, ok := parseClientAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return ""
}

func resolveCountryCode(r *http.Request) string {
	for _, h := range countryHeaders {
		if code, ok := countryCode(r.Header.Get(h)); ok {
			return code
		}
	}
	return unknownCountry
}

func firstListItem(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(first)
}

// parseClientAddr accepts a bare address or host:port and unmaps IPv4-in-IPv6.
func parseClientAddr(raw string) (netip.Addr, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return netip.Addr{}, false
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// countryCode accepts ISO 3166 alpha-2 codes. Cloudflare's "XX" and "T1"
// (Tor) are not countries.
func countryCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 || code == "XX" {
		return "", false
	}
	if code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return "", false
	}
	return code, true
}
