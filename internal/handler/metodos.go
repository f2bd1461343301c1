package handler

import (
	"net/http"

	"energen/internal/finanzas"

	"github.com/gin-gonic/gin"
)

// MetodosPago lists the payment methods with their display labels, in form
// order.
func MetodosPago(c *gin.Context) {
	c.JSON(http.StatusOK, finanzas.MetodosDePago)
}
