package ratelimit

import "strings"

// unlimited is returned for health and metrics routes that must never be throttled.
var unlimited = EndpointConfig{}

// MatchEndpoint picks the configuration for a request. An exact path wins;
// otherwise the longest configured prefix ending in "/" applies. Health
// and metrics routes match an unlimited config and nil means "use the default limit".
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && (path == "/health" || path == "/metrics") {
		cfg := unlimited
		return &cfg
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
