package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NewClientIPExtractor returns the address rate limits are keyed on.
// Without trusted proxies only the socket peer counts. With them,
// X-Forwarded-For is walked right to left past the trusted ranges, so
// hops a client prepends are never reached.
func NewClientIPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, proxy := range trustedProxies {
		ipNet, err := parseProxyRange(proxy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(opts...), nil
}

func parseProxyRange(proxy string) (*net.IPNet, error) {
	proxy = strings.TrimSpace(proxy)
	if strings.Contains(proxy, "/") {
		_, ipNet, err := net.ParseCIDR(proxy)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid trusted proxy range %q", proxy)
		}

		return ipNet, nil
	}

	ip := net.ParseIP(proxy)
	if ip == nil {
		return nil, errors.Errorf("invalid trusted proxy address %q", proxy)
	}
	bits := 8 * net.IPv6len
	if v4 := ip.To4(); v4 != nil {
		ip, bits = v4, 8*net.IPv4len
	}

	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}
