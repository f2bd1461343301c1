package infra

import (
	"fmt"

	"energen/internal/finanzas"
	"energen/internal/model"

	"github.com/xuri/excelize/v2"
)

const hojaTransacciones = "Facturas"

var encabezadosXLSX = []string{
	"Fecha", "Factura", "Cliente", "Descripción", "Medio de pago",
	"Monto", "N° Cheque", "Banco", "Vencimiento cheque",
}

// GenerarTransaccionesXLSX writes one row per transaccion, in the given
// order, and returns the workbook bytes.
func GenerarTransaccionesXLSX(txs []model.Transaccion) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaTransacciones); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	for i, h := range encabezadosXLSX {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(hojaTransacciones, cell, h)
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(hojaTransacciones, 1, 1, bold)
	}
	montoFmt := "#,##0.00"
	montoStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &montoFmt})

	for i, t := range txs {
		row := i + 2
		f.SetCellValue(hojaTransacciones, fmt.Sprintf("A%d", row), t.Fecha.Format("02/01/2006"))
		f.SetCellValue(hojaTransacciones, fmt.Sprintf("B%d", row), t.NumeroFactura)
		f.SetCellValue(hojaTransacciones, fmt.Sprintf("C%d", row), t.ClienteNombre)
		f.SetCellValue(hojaTransacciones, fmt.Sprintf("D%d", row), t.Descripcion)
		f.SetCellValue(hojaTransacciones, fmt.Sprintf("E%d", row), finanzas.EtiquetaMetodo(t.MetodoPago))
		f.SetCellValue(hojaTransacciones, fmt.Sprintf("F%d", row), t.Monto.InexactFloat64())
		f.SetCellStyle(hojaTransacciones, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), montoStyle)
		if t.NumeroCheque != nil {
			f.SetCellValue(hojaTransacciones, fmt.Sprintf("G%d", row), *t.NumeroCheque)
		}
		if t.BancoEmisor != nil {
			f.SetCellValue(hojaTransacciones, fmt.Sprintf("H%d", row), *t.BancoEmisor)
		}
		if t.FechaCobroCheque != nil {
			f.SetCellValue(hojaTransacciones, fmt.Sprintf("I%d", row), t.FechaCobroCheque.Format("02/01/2006"))
		}
	}
	_ = f.SetColWidth(hojaTransacciones, "C", "D", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentTypeXLSX is the MIME type of GenerarTransaccionesXLSX output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
