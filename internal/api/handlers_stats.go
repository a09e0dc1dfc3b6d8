package api

import (
	"net/http"
)

func (s *Server) handleGenerationStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "generation stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"generation":  s.stats.Snapshot(),
		"vocabulary":  s.service.VocabularySize(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
