package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/skillscout/internal/logger"
)

// handleCacheClear handles POST /api/v1/cache/clear
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	removed := s.cache.Len()
	s.cache.Clear()
	s.requestLogger(r).Info("Cache cleared", logger.Int("entries", removed))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "cache cleared",
		"removed": removed,
	})
}

// handleCacheRefresh handles POST /api/v1/cache/refresh/{key}. The entry is
// dropped so the next matching search goes upstream.
func (s *Server) handleCacheRefresh(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		s.errorResponse(w, HTTPStatus(ErrCacheKeyMissing), ErrCacheKeyMissing.Error())
		return
	}

	s.cache.Remove(key)
	s.requestLogger(r).Info("Cache entry removed", logger.String("cache_key", key))
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "cache entry removed",
		"key":     key,
	})
}
