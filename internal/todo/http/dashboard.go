package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
}

func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.DashboardService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, DashboardResponse{
		TotalUsers:      stats.TotalUsers,
		TotalTasks:      stats.TotalTasks,
		CompletedTasks:  stats.CompletedTasks,
		PendingTasks:    stats.PendingTasks,
		TasksByCategory: stats.TasksByCategory,
		RecentTasks:     toTaskResponses(stats.RecentTasks),
	})
}
