package handler

import (
	"net/http"

	"energen/internal/dto"
	"energen/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Listar godoc
// @Summary Clientes ordenados por nombre
// @Tags clientes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ListaClientesResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
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

// Eliminar godoc
// @Summary Elimina un cliente y sus facturas
// @Tags clientes
// @Security BearerAuth
// @Param id path string true "ID del cliente"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [delete]
func (h *ClientesHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
