package middleware

import (
	"net/http/httptest"
	"net/netip"
	"testing"
)

func TestRemoteAddrExtractor_ExtractIP(t *testing.T) {
	extractor := &RemoteAddrExtractor{}

	testCases := []struct {
		name       string
		remoteAddr string
		xff        string
		expected   string
		wantErr    bool
	}{
		{"IPv4 with port", "192.168.1.1:54321", "", "192.168.1.1", false},
		{"IPv6 with port", "[2001:db8::1]:443", "", "2001:db8::1", false},
		{"bare IP", "10.0.0.7", "", "10.0.0.7", false},
		{"forwarded header ignored", "192.168.1.1:1", "1.2.3.4", "192.168.1.1", false},
		{"garbage", "not-an-address", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}

			ip, err := extractor.ExtractIP(req)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ExtractIP() = %q, expected error", ip)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractIP() returned unexpected error: %v", err)
			}
			if ip != tc.expected {
				t.Errorf("ExtractIP() = %q, expected %q", ip, tc.expected)
			}
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	cfg, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.168.1.1 ", "", "2001:db8::/32"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies() error: %v", err)
	}

	want := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.1/32"),
		netip.MustParsePrefix("2001:db8::/32"),
	}
	if len(cfg.AllowedCIDRs) != len(want) {
		t.Fatalf("got %d prefixes, want %d", len(cfg.AllowedCIDRs), len(want))
	}
	for i := range want {
		if cfg.AllowedCIDRs[i] != want[i] {
			t.Errorf("prefix %d = %v, want %v", i, cfg.AllowedCIDRs[i], want[i])
		}
	}

	if _, err := ParseTrustedProxies([]string{"10.0.0.0/33"}); err == nil {
		t.Error("expected error for invalid CIDR")
	}
	if _, err := ParseTrustedProxies([]string{"proxy.internal"}); err == nil {
		t.Error("expected error for hostname")
	}
}

func TestTrustedProxyExtractor_ExtractIP(t *testing.T) {
	cfg, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatal(err)
	}
	extractor := NewTrustedProxyExtractor(cfg)

	testCases := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		expected   string
	}{
		{"trusted proxy with XFF", "10.1.2.3:80", "203.0.113.9, 10.1.2.3", "", "203.0.113.9"},
		{"trusted proxy with X-Real-IP", "10.1.2.3:80", "", "203.0.113.10", "203.0.113.10"},
		{"trusted proxy with bad XFF falls back to X-Real-IP", "10.1.2.3:80", "junk", "203.0.113.11", "203.0.113.11"},
		{"trusted proxy without headers", "10.1.2.3:80", "", "", "10.1.2.3"},
		{"untrusted peer spoofing XFF", "198.51.100.1:80", "203.0.113.9", "", "198.51.100.1"},
		{"untrusted peer spoofing X-Real-IP", "198.51.100.1:80", "", "203.0.113.9", "198.51.100.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				req.Header.Set("X-Real-IP", tc.xri)
			}

			ip, err := extractor.ExtractIP(req)
			if err != nil {
				t.Fatalf("ExtractIP() returned unexpected error: %v", err)
			}
			if ip != tc.expected {
				t.Errorf("ExtractIP() = %q, expected %q", ip, tc.expected)
			}
		})
	}
}

func TestNewIPExtractor(t *testing.T) {
	ex, err := NewIPExtractor(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ex.(*RemoteAddrExtractor); !ok {
		t.Errorf("NewIPExtractor(nil) = %T, want *RemoteAddrExtractor", ex)
	}

	ex, err = NewIPExtractor([]string{"127.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ex.(*TrustedProxyExtractor); !ok {
		t.Errorf("NewIPExtractor(proxies) = %T, want *TrustedProxyExtractor", ex)
	}

	if _, err := NewIPExtractor([]string{"nope"}); err == nil {
		t.Error("expected error for invalid proxy")
	}
}
