package dto

import (
	"time"

	"energen/internal/finanzas"
)

type DashboardResponse struct {
	Window      finanzas.Ventana `json:"window"`
	WindowLabel string           `json:"window_label"`
	ChartTitle  string           `json:"chart_title"`
	finanzas.Estadisticas
	GeneratedAt time.Time `json:"generated_at"`
}

// DatosResponse is the joint load of both lists; it is returned whole or not
// at all.
type DatosResponse struct {
	Clients      []ClienteResponse     `json:"clients"`
	Transactions []TransaccionResponse `json:"transactions"`
}
