package api

import (
	"net/http"

	"github.com/dgallion1/clinsum/internal/summarize"
)

type llmStatsResponse struct {
	Model   string                  `json:"model"`
	Latency summarize.StatsSnapshot `json:"latency"`
}

// handleLLMStats exposes rolling-window latency of LLM calls.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, llmStatsResponse{
		Model:   s.llm.Model(),
		Latency: s.llm.Stats.Snapshot(),
	})
}
