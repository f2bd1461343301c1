package infra

// pdf.go: A4 dashboard report rendered with go-pdf/fpdf.
//   - Header with the app name, period and generation time
//   - KPI block (Total Facturado / Cobrado Real / Cheques Diferidos)
//   - Chart series as a table with proportional bars

import (
	"bytes"
	"fmt"
	"time"

	"energen/internal/finanzas"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReportePDF is everything the dashboard report prints.
type ReportePDF struct {
	AppName      string
	Ventana      finanzas.Ventana
	Estadisticas finanzas.Estadisticas
	GeneradoEn   time.Time
}

// GenerarReportePDF renders the report and returns the PDF bytes.
func GenerarReportePDF(r ReportePDF) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(r.AppName, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(234, 88, 12)
	pdf.CellFormat(contentW, 10, tr(r.AppName), "", 1, "L", false, 0, "")
	pdf.SetTextColor(30, 41, 59)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Reporte de facturación: "+finanzas.EtiquetaVentana(r.Ventana)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Generado: "+r.GeneradoEn.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── KPIs ─────────────────────────────────────────────────────────────────
	kpis := []struct {
		label string
		monto decimal.Decimal
	}{
		{"Total Facturado", r.Estadisticas.Total},
		{"Cobrado Real", r.Estadisticas.Cobrado},
		{"Cheques Diferidos", r.Estadisticas.ChequesPendientes},
	}
	colW := contentW / 3
	pdf.SetFillColor(241, 245, 249)
	pdf.SetFont("Helvetica", "B", 9)
	for _, k := range kpis {
		pdf.CellFormat(colW, 7, tr(k.label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "B", 13)
	for _, k := range kpis {
		pdf.CellFormat(colW, 11, formatoMonto(k.monto), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(16)

	// ── Serie ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 8, tr(finanzas.TituloSerie(r.Ventana)), "", 1, "L", false, 0, "")

	if len(r.Estadisticas.Serie) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, tr("Sin movimientos en el período."), "", 1, "L", false, 0, "")
	} else {
		tope := decimal.Zero
		for _, p := range r.Estadisticas.Serie {
			if p.Monto.GreaterThan(tope) {
				tope = p.Monto
			}
		}
		labelW, montoW := 25.0, 40.0
		barW := contentW - labelW - montoW
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetFillColor(234, 88, 12)
		for _, p := range r.Estadisticas.Serie {
			y := pdf.GetY()
			pdf.CellFormat(labelW, 6, tr(p.Etiqueta), "", 0, "L", false, 0, "")
			if tope.IsPositive() {
				w := p.Monto.Div(tope).InexactFloat64() * (barW - 4)
				if w > 0 {
					pdf.Rect(pdf.GetX()+2, y+1, w, 4, "F")
				}
			}
			pdf.SetX(15 + labelW + barW)
			pdf.CellFormat(montoW, 6, formatoMonto(p.Monto), "", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// formatoMonto prints 470000.5 as "$470.000,50".
func formatoMonto(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	entero, dec := s[:len(s)-3], s[len(s)-2:]

	var b []byte
	for i := range entero {
		if i > 0 && (len(entero)-i)%3 == 0 {
			b = append(b, '.')
		}
		b = append(b, entero[i])
	}
	signo := ""
	if d.IsNegative() {
		signo = "-"
	}
	return signo + "$" + string(b) + "," + dec
}
