// Package middleware holds the request filters that sit in front of the page
// handlers: client IP extraction, per-client rate limiting and the
// Content-Security-Policy header.
package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor determines the client IP of a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the connection's remote address only. Forwarding
// headers are ignored because any client can set them.
type RemoteAddrExtractor struct{}

// ExtractIP implements IPExtractor.
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the proxies allowed to report the client address
// through X-Forwarded-For or X-Real-IP.
type TrustedProxyConfig struct {
	AllowedCIDRs []netip.Prefix
}

// ParseTrustedProxies converts IP addresses and CIDR ranges into a
// TrustedProxyConfig. Bare addresses become single-host prefixes.
func ParseTrustedProxies(entries []string) (TrustedProxyConfig, error) {
	var cfg TrustedProxyConfig
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			addr, addrErr := netip.ParseAddr(entry)
			if addrErr != nil {
				return TrustedProxyConfig{}, fmt.Errorf("invalid IP or CIDR %q", entry)
			}
			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, prefix.Masked())
	}
	return cfg, nil
}

// IsTrusted reports whether remoteAddr ("ip:port" or a bare ip) belongs to a
// trusted proxy.
func (c TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// TrustedProxyExtractor honours forwarding headers only when the request
// arrives from a trusted proxy.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor returns an extractor for config.
func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

// NewIPExtractor returns a TrustedProxyExtractor when proxies are configured
// and a RemoteAddrExtractor otherwise.
func NewIPExtractor(trustedProxies []string) (IPExtractor, error) {
	cfg, err := ParseTrustedProxies(trustedProxies)
	if err != nil {
		return nil, err
	}
	if len(cfg.AllowedCIDRs) == 0 {
		return &RemoteAddrExtractor{}, nil
	}
	return NewTrustedProxyExtractor(cfg), nil
}

// ExtractIP implements IPExtractor.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Debug("ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip, nil
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String(), nil
		}
	}
	return extractIPFromAddr(r.RemoteAddr)
}

func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the left-most address of a comma separated list, or ""
// when it is not an IP.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
