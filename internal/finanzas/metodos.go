package finanzas

import "energen/internal/model"

// TodosLosMetodos is the method filter value that disables method matching.
const TodosLosMetodos = "ALL"

// MetodoPago pairs a stored payment method with its display label.
type MetodoPago struct {
	Valor    string `json:"value"`
	Etiqueta string `json:"label"`
}

// MetodosDePago lists the accepted payment methods in display order.
var MetodosDePago = []MetodoPago{
	{Valor: model.MetodoEfectivo, Etiqueta: "Efectivo"},
	{Valor: model.MetodoTransferencia, Etiqueta: "Transferencia Bancaria"},
	{Valor: model.MetodoCheque, Etiqueta: "Cheque Físico"},
	{Valor: model.MetodoECheq, Etiqueta: "E-Cheq"},
}

// EtiquetaMetodo returns the label for valor, or valor itself when unknown.
func EtiquetaMetodo(valor string) string {
	for _, m := range MetodosDePago {
		if m.Valor == valor {
			return m.Etiqueta
		}
	}
	return valor
}

// EsCheque reports whether the method carries check metadata.
func EsCheque(metodo string) bool {
	return metodo == model.MetodoCheque || metodo == model.MetodoECheq
}

// MetodoValido reports whether metodo is one of MetodosDePago.
func MetodoValido(metodo string) bool {
	for _, m := range MetodosDePago {
		if m.Valor == metodo {
			return true
		}
	}
	return false
}
