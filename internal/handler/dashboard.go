package handler

import (
	"net/http"

	"energen/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Datos returns clients and transactions from a single joint load.
func (h *DashboardHandler) Datos(c *gin.Context) {
	resp, err := h.svc.Datos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estadisticas godoc
// @Summary KPIs y serie del dashboard
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param ventana query string false "WEEK | MONTH | ALL" default(MONTH)
// @Success 200 {object} dto.DashboardResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/dashboard [get]
func (h *DashboardHandler) Estadisticas(c *gin.Context) {
	ventana, ok := ventanaQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.Estadisticas(c.Request.Context(), ventana)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
