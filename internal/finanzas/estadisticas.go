package finanzas

import (
	"strings"
	"time"

	"energen/internal/model"

	"github.com/shopspring/decimal"
)

// Ventana selects which transactions the dashboard aggregates.
type Ventana string

const (
	VentanaSemana Ventana = "WEEK"
	VentanaMes    Ventana = "MONTH"
	VentanaTodo   Ventana = "ALL"
)

// ParseVentana accepts WEEK, MONTH or ALL in any letter case.
func ParseVentana(s string) (Ventana, bool) {
	switch v := Ventana(strings.ToUpper(strings.TrimSpace(s))); v {
	case VentanaSemana, VentanaMes, VentanaTodo:
		return v, true
	}
	return "", false
}

// PuntoSerie is one bar of the dashboard chart.
type PuntoSerie struct {
	Etiqueta string          `json:"name"`
	Monto    decimal.Decimal `json:"monto"`
}

// Estadisticas are the dashboard KPIs for one window.
// Cobrado + ChequesPendientes == Total always holds.
type Estadisticas struct {
	Total             decimal.Decimal `json:"total"`
	Cobrado           decimal.Decimal `json:"collected"`
	ChequesPendientes decimal.Decimal `json:"pending_checks"`
	Serie             []PuntoSerie    `json:"series"`
}

// CalcularEstadisticas filters txs to ventana relative to now, sums the KPIs
// and groups amounts into chart buckets.
//
// A check counts as pending only while its payment date is strictly after
// now. Cobrado is Total minus pending checks, so a check whose date already
// passed is reported as collected whether or not it cleared.
//
// Buckets keep the order in which their label is first seen; two dates that
// render to the same label share a bucket.
func CalcularEstadisticas(txs []model.Transaccion, ventana Ventana, now time.Time) Estadisticas {
	est := Estadisticas{
		Total:             decimal.Zero,
		Cobrado:           decimal.Zero,
		ChequesPendientes: decimal.Zero,
		Serie:             []PuntoSerie{},
	}
	pos := make(map[string]int)

	for _, t := range txs {
		if !enVentana(t.Fecha, ventana, now) {
			continue
		}
		est.Total = est.Total.Add(t.Monto)
		if chequePendiente(t, now) {
			est.ChequesPendientes = est.ChequesPendientes.Add(t.Monto)
		}

		etiqueta := etiquetaSerie(t.Fecha, ventana)
		if i, ok := pos[etiqueta]; ok {
			est.Serie[i].Monto = est.Serie[i].Monto.Add(t.Monto)
			continue
		}
		pos[etiqueta] = len(est.Serie)
		est.Serie = append(est.Serie, PuntoSerie{Etiqueta: etiqueta, Monto: t.Monto})
	}

	est.Cobrado = est.Total.Sub(est.ChequesPendientes)
	return est
}

func enVentana(fecha time.Time, ventana Ventana, now time.Time) bool {
	switch ventana {
	case VentanaMes:
		return fecha.Year() == now.Year() && fecha.Month() == now.Month()
	case VentanaSemana:
		// rolling seven days, the cut-off keeps now's time of day
		return !fecha.Before(now.AddDate(0, 0, -7))
	default:
		return true
	}
}

func chequePendiente(t model.Transaccion, now time.Time) bool {
	return EsCheque(t.MetodoPago) && t.FechaCobroCheque != nil && t.FechaCobroCheque.After(now)
}

// mesesCortos are the es-AR short month names.
var mesesCortos = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

func etiquetaSerie(fecha time.Time, ventana Ventana) string {
	if ventana == VentanaTodo {
		return mesesCortos[fecha.Month()-1] + " " + fecha.Format("06")
	}
	return fecha.Format("02/01")
}

// EtiquetaVentana is the period name shown to users.
func EtiquetaVentana(v Ventana) string {
	switch v {
	case VentanaSemana:
		return "Esta Semana"
	case VentanaMes:
		return "Este Mes"
	default:
		return "Histórico"
	}
}

// TituloSerie names the chart for the given window.
func TituloSerie(v Ventana) string {
	if v == VentanaTodo {
		return "Evolución de Ingresos (Mensual)"
	}
	return "Evolución de Ingresos (Diaria)"
}
