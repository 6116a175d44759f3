// Package reversedns builds the canonical in-addr.arpa / ip6.arpa owner name
// for a PTR record from an IPv4 or IPv6 literal, per RFC 1035 §3.5 and
// RFC 3596 §2.5.
package reversedns

import (
	"fmt"
	"net"
	"strings"

	"github.com/joshuafuller/dnsmock/internal/errors"
)

// Name returns the reverse-lookup owner name for ip: octets (or nibbles)
// reversed, joined with the appropriate arpa zone suffix.
func Name(ip string) (string, error) {
	addr := net.ParseIP(ip)
	if addr == nil {
		return "", &errors.InvalidIPAddressError{Value: ip}
	}

	if v4 := addr.To4(); v4 != nil {
		return ipv4Name(v4), nil
	}
	return ipv6Name(addr.To16()), nil
}

func ipv4Name(ip net.IP) string {
	parts := make([]string, 4)
	for i := 0; i < 4; i++ {
		parts[i] = fmt.Sprintf("%d", ip[3-i])
	}
	return strings.Join(parts, ".") + ".in-addr.arpa"
}

func ipv6Name(ip net.IP) string {
	const hex = "0123456789abcdef"
	nibbles := make([]string, 0, 32)
	for i := len(ip) - 1; i >= 0; i-- {
		b := ip[i]
		nibbles = append(nibbles, string(hex[b&0x0f]), string(hex[b>>4]))
	}
	return strings.Join(nibbles, ".") + ".ip6.arpa"
}
