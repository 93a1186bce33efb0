package macaddr

import (
	"fmt"
	"net"
	"strings"
)

// Normalize lowercases a MAC address, accepts '-' as separator and validates
// it as a 48-bit hardware address.
func Normalize(mac string) (string, error) {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(mac)), "-", ":")
	hw, err := net.ParseMAC(s)
	if err != nil {
		return "", fmt.Errorf("invalid MAC address %q", mac)
	}
	if len(hw) != 6 {
		return "", fmt.Errorf("unsupported MAC address length %q", mac)
	}
	return hw.String(), nil
}
