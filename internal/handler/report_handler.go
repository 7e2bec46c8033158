package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modatienda/boutique_api/internal/service"
	"github.com/modatienda/boutique_api/internal/utils"
)

type ReportHandler struct {
	kpiService *service.KPIService
}

func NewReportHandler(kpiService *service.KPIService) *ReportHandler {
	return &ReportHandler{kpiService: kpiService}
}

// Dashboard handles GET /v1/admin/reports/dashboard.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	report, err := h.kpiService.GetDashboard(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to build dashboard report")
		return
	}

	utils.Success(c, 200, "Dashboard report", report)
}
