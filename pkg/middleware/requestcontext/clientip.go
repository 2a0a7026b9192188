package requestcontext

import (
	"context"
	"net"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

type WithClientIPConfig struct {
	// TrustedHeader names a header holding the client ip, e.g. CF-Connecting-IP.
	// A valid ip in it wins over everything else.
	TrustedHeader string `mapstructure:"trusted_proxies_header"`

	// TrustedProxiesIP are the CIDR ranges of every proxy between the client and
	// the server. X-Forwarded-For is then walked from the right and the first
	// untrusted ip is the client.
	TrustedProxiesIP []string `mapstructure:"trusted_proxies_ip"`

	// EnableRejectMalformedRequest answers 403 to proxied requests whose client
	// ip can't be trusted.
	EnableRejectMalformedRequest bool `mapstructure:"enable_reject_malformed_request"`
}

type clientIPKey struct{}

// GetClientIP returns the ip stored by [WithClientIP], or "".
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// WithClientIP resolves the client ip without trusting a spoofed X-Forwarded-For.
// It returns an error if a trusted proxy range is not a valid CIDR.
func WithClientIP(config WithClientIPConfig) (Option, error) {
	proxies := make([]*net.IPNet, 0, len(config.TrustedProxiesIP))
	for _, r := range config.TrustedProxiesIP {
		_, ipnet, err := net.ParseCIDR(r)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid trusted proxy range %q", r)
		}
		proxies = append(proxies, ipnet)
	}
	trusted := func(ip net.IP) bool {
		for _, r := range proxies {
			if ip != nil && r.Contains(ip) {
				return true
			}
		}
		return false
	}

	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		withIP := func(ip string) (context.Context, error) {
			return context.WithValue(ctx, clientIPKey{}, ip), nil
		}

		if config.TrustedHeader != "" {
			if ip := c.Get(config.TrustedHeader); net.ParseIP(ip) != nil {
				return withIP(ip)
			}
		}

		forwarded := c.IPs()
		if len(forwarded) == 0 {
			return withIP(c.IP())
		}
		if len(proxies) > 0 {
			for i := len(forwarded) - 1; i >= 0; i-- {
				if !trusted(net.ParseIP(forwarded[i])) {
					return withIP(forwarded[i])
				}
			}
			return withIP(forwarded[0])
		}
		if config.EnableRejectMalformedRequest {
			logger.WarnContext(ctx, "IP spoofing detected, rejecting request",
				slogx.String("event", "requestcontext/ip_spoofing_detected"),
				slogx.String("ip", c.IP()),
				slogx.Any("ips", forwarded),
			)
			return nil, rejectError{status: http.StatusForbidden, message: "not allowed to access"}
		}
		return withIP(forwarded[0])
	}, nil
}
