package handler

import (
	"net/http"

	"github.com/Yumichan48/foxrunner/internal/production"
)

// HandleGetStats returns lifetime production totals
// @Summary Production stats
// @Description Returns the lifetime crafted counter, per-quality totals and current queue depth
// @Tags stats
// @Produce json
// @Success 200 {object} production.Stats
// @Router /stats [get]
func HandleGetStats(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Stats())
	}
}
