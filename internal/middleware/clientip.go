package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/reqctx"
)

// ParseTrustedProxies принимает IP-адреса и CIDR-подсети из TRUSTED_PROXIES.
func ParseTrustedProxies(items []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", item, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", item, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// ClientIP кладёт в контекст адрес клиента. X-Forwarded-For учитывается
// только если запрос пришёл от доверенного прокси; цепочка читается справа
// налево до первого недоверенного адреса.
func ClientIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	isTrusted := func(a netip.Addr) bool {
		for _, p := range trusted {
			if p.Contains(a) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := RemoteIP(r)
			if peer, err := netip.ParseAddr(ip); err == nil && isTrusted(peer.Unmap()) {
				ip = forwardedFor(r.Header.Values("X-Forwarded-For"), ip, isTrusted)
			}
			next.ServeHTTP(w, r.WithContext(reqctx.WithClientIP(r.Context(), ip)))
		})
	}
}

// RemoteIP — адрес TCP-пира без порта.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func forwardedFor(headers []string, peer string, isTrusted func(netip.Addr) bool) string {
	var hops []string
	for _, h := range headers {
		for _, part := range strings.Split(h, ",") {
			if part = strings.TrimSpace(part); part != "" {
				hops = append(hops, part)
			}
		}
	}

	client := peer
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(hops[i])
		if err != nil {
			// мусор в заголовке: дальше цепочке не верим
			return client
		}
		client = addr.Unmap().String()
		if !isTrusted(addr.Unmap()) {
			return client
		}
	}
	return client
}
