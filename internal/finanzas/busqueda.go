package finanzas

import (
	"strings"

	"energen/internal/model"
)

const (
	MensajeSinFacturas   = "No hay facturas cargadas."
	MensajeSinResultados = "No se encontraron resultados con los filtros actuales."
	MensajeSinClientes   = "No hay clientes cargados."
)

// FiltrarTransacciones returns, in their original order, the transactions
// that match both metodo and termino.
//
// metodo is a payment method or TodosLosMetodos (empty means the same).
// termino matches client name and description ignoring case, and the invoice
// number case-sensitively. BancoEmisor is never searched.
func FiltrarTransacciones(txs []model.Transaccion, termino, metodo string) []model.Transaccion {
	termLower := strings.ToLower(termino)
	out := make([]model.Transaccion, 0, len(txs))
	for _, t := range txs {
		if !coincideMetodo(t, metodo) || !coincideTexto(t, termino, termLower) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func coincideMetodo(t model.Transaccion, metodo string) bool {
	return metodo == "" || metodo == TodosLosMetodos || t.MetodoPago == metodo
}

func coincideTexto(t model.Transaccion, termino, termLower string) bool {
	if termino == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.ClienteNombre), termLower) ||
		strings.Contains(strings.ToLower(t.Descripcion), termLower) ||
		strings.Contains(t.NumeroFactura, termino)
}

// MensajeVacio tells an empty store apart from a filter that matched nothing.
// It returns "" when there is something to show.
func MensajeVacio(cargadas, filtradas int) string {
	switch {
	case cargadas == 0:
		return MensajeSinFacturas
	case filtradas == 0:
		return MensajeSinResultados
	}
	return ""
}
