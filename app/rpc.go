package app

import "strings"

// normalizeRPCURL converts CometBFT listen addresses into URLs the RPC HTTP
// client accepts. Comet configs use tcp:// for HTTP endpoints.
func normalizeRPCURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "tcp://") {
		return "http://" + strings.TrimPrefix(trimmed, "tcp://")
	}

	return trimmed
}

// NormalizeRPCURL is the exported form used by command wiring.
func NormalizeRPCURL(raw string) string {
	return normalizeRPCURL(raw)
}
