package dash

import (
	"fmt"
	"strconv"
	"strings"

	internalstrings "github.com/lintelhq/lintel/internal/strings"
)

// DefaultPort is used when no API address is configured.
const DefaultPort = 8475

// ResolveAddr picks the API server address: an explicit value wins,
// then the configured address, then the default port on loopback.
func ResolveAddr(flagAddr, configAddr string) (string, error) {
	if !internalstrings.IsBlank(flagAddr) {
		return normalizeAddr(flagAddr)
	}
	if !internalstrings.IsBlank(configAddr) {
		return normalizeAddr(configAddr)
	}
	return fmt.Sprintf("127.0.0.1:%d", DefaultPort), nil
}

// normalizeAddr accepts "host:port", ":port", a bare port number, or a
// full URL and returns a dialable address.
func normalizeAddr(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return "", fmt.Errorf("address is required")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed, nil
	}
	if strings.Contains(trimmed, ":") {
		return trimmed, nil
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid port %q", trimmed)
	}
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("port out of range: %d", port)
	}
	return fmt.Sprintf("127.0.0.1:%d", port), nil
}
