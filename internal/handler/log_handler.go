package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modatienda/boutique_api/internal/repository"
	"github.com/modatienda/boutique_api/internal/utils"
)

type LogHandler struct {
	logRepo *repository.LogRepository
}

func NewLogHandler(logRepo *repository.LogRepository) *LogHandler {
	return &LogHandler{logRepo: logRepo}
}

// List handles GET /v1/admin/logs, the most recent audit entries.
func (h *LogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	entries, err := h.logRepo.ListRecent(limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch logs")
		return
	}

	utils.Success(c, 200, "Logs fetched", entries)
}
