package utils

import (
	"net/http"
	"net/netip"
	"strings"
)

// ParseAddr parses "ip", "ip:port" or "[v6]:port" into an address without zone.
func ParseAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, false
	}
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap().WithZone(""), true
	}
	if a, err := netip.ParseAddr(s); err == nil {
		return a.Unmap().WithZone(""), true
	}
	return netip.Addr{}, false
}

// firstForwardedFor returns the left-most X-Forwarded-For entry.
func firstForwardedFor(xff string) string {
	if i := strings.IndexByte(xff, ','); i >= 0 {
		xff = xff[:i]
	}
	return strings.TrimSpace(xff)
}

// ClientAddr resolves the client address of r.
// With trustProxy, CF-Connecting-IP, X-Forwarded-For (first) and X-Real-IP are
// consulted in that order before RemoteAddr.
func ClientAddr(r *http.Request, trustProxy bool) (netip.Addr, bool) {
	if trustProxy {
		for _, v := range []string{
			r.Header.Get("CF-Connecting-IP"),
			firstForwardedFor(r.Header.Get("X-Forwarded-For")),
			r.Header.Get("X-Real-IP"),
		} {
			if a, ok := ParseAddr(v); ok {
				return a, true
			}
		}
	}
	return ParseAddr(r.RemoteAddr)
}

// AddrMatcher matches addresses against a list of prefixes.
// Bare addresses are stored as single-address prefixes.
type AddrMatcher struct {
	prefixes []netip.Prefix
	invalid  []string
}

func NewAddrMatcher(list []string) *AddrMatcher {
	m := &AddrMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if a, ok := ParseAddr(s); ok {
			m.prefixes = append(m.prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		m.invalid = append(m.invalid, s)
	}
	return m
}

func (m *AddrMatcher) IsEmpty() bool {
	return len(m.prefixes) == 0
}

// Invalid lists entries that were neither an address nor a prefix.
func (m *AddrMatcher) Invalid() []string {
	return m.invalid
}

func (m *AddrMatcher) Allow(a netip.Addr) bool {
	if !a.IsValid() {
		return false
	}
	a = a.Unmap()
	for _, p := range m.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}
