package subnet

import (
	"fmt"
	"net"
	"strings"
)

// Normalize parses an IPv4 CIDR and returns it in canonical network form,
// e.g. 10.0.0.1/16 -> 10.0.0.0/16.
func Normalize(cidr string) (string, error) {
	ipnet, err := parseIPv4CIDR(cidr)
	if err != nil {
		return "", err
	}
	return ipnet.String(), nil
}

// Contains reports whether ip lies within cidr. Both must be IPv4.
func Contains(cidr, ip string) (bool, error) {
	ipnet, err := parseIPv4CIDR(cidr)
	if err != nil {
		return false, err
	}
	p := net.ParseIP(strings.TrimSpace(ip))
	if p == nil || p.To4() == nil {
		return false, fmt.Errorf("invalid IPv4 address %q", ip)
	}
	return ipnet.Contains(p), nil
}

func parseIPv4CIDR(cidr string) (*net.IPNet, error) {
	_, ipnet, err := net.ParseCIDR(strings.TrimSpace(cidr))
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
	}
	if ipnet.IP.To4() == nil {
		return nil, fmt.Errorf("only IPv4 CIDRs are supported: %s", cidr)
	}
	return ipnet, nil
}
