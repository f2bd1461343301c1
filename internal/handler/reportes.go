package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"energen/internal/apierror"
	"energen/internal/dto"
	"energen/internal/infra"
	"energen/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// DashboardPDF godoc
// @Summary Reporte del dashboard en PDF
// @Tags reportes
// @Security BearerAuth
// @Produce application/pdf
// @Param ventana query string false "WEEK | MONTH | ALL" default(MONTH)
// @Success 200 {file} binary
// @Router /v1/reportes/dashboard.pdf [get]
func (h *ReportesHandler) DashboardPDF(c *gin.Context) {
	ventana, ok := ventanaQuery(c)
	if !ok {
		return
	}
	pdf, err := h.svc.DashboardPDF(c.Request.Context(), ventana)
	if err != nil {
		respondError(c, err)
		return
	}
	nombre := fmt.Sprintf("dashboard-%s-%s.pdf", strings.ToLower(string(ventana)), time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *ReportesHandler) TransaccionesXLSX(c *gin.Context) {
	var filtro dto.FiltroTransacciones
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	raw, err := h.svc.TransaccionesXLSX(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="facturas-`+time.Now().Format("20060102")+`.xlsx"`)
	c.Data(http.StatusOK, infra.ContentTypeXLSX, raw)
}

// Email godoc
// @Summary Envía el reporte del dashboard por email
// @Tags reportes
// @Security BearerAuth
// @Accept json
// @Param body body dto.ReporteEmailRequest true "Destino y período"
// @Success 202 {object} map[string]string
// @Router /v1/reportes/email [post]
func (h *ReportesHandler) Email(c *gin.Context) {
	var req dto.ReporteEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarPorEmail(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Reporte en cola de envio"})
}
