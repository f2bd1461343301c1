package handler

import (
	"net/http"

	"energen/internal/apierror"
	"energen/internal/dto"
	"energen/internal/service"

	"github.com/gin-gonic/gin"
)

type TransaccionesHandler struct{ svc service.TransaccionService }

func NewTransaccionesHandler(svc service.TransaccionService) *TransaccionesHandler {
	return &TransaccionesHandler{svc: svc}
}

// Listar godoc
// @Summary Facturas con búsqueda y filtro por método de pago
// @Tags transacciones
// @Security BearerAuth
// @Produce json
// @Param q query string false "Cliente, factura o descripción"
// @Param metodo query string false "ALL | EFECTIVO | TRANSFERENCIA | CHEQUE | E_CHEQ"
// @Success 200 {object} dto.ListaTransaccionesResponse
// @Router /v1/transacciones [get]
func (h *TransaccionesHandler) Listar(c *gin.Context) {
	var filtro dto.FiltroTransacciones
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Registra una factura
// @Tags transacciones
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CrearTransaccionRequest true "Factura"
// @Success 201 {object} dto.TransaccionResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/transacciones [post]
func (h *TransaccionesHandler) Crear(c *gin.Context) {
	var req dto.CrearTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
