package worker

// email_worker.go
// Renders the dashboard PDF for the requested window and mails it.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"energen/internal/dto"
	"energen/internal/finanzas"
	"energen/internal/infra"

	"github.com/rs/zerolog/log"
)

var ErrSMTPNoConfigurado = errors.New("smtp no configurado")

// GeneradorPDF renders the dashboard report.
type GeneradorPDF interface {
	DashboardPDF(ctx context.Context, ventana finanzas.Ventana) ([]byte, error)
}

// Enviador delivers one email with an attachment.
type Enviador interface {
	Configurado() bool
	SendReporte(to, subject, body string, adjunto []byte, nombreAdjunto, contentType string) error
}

// ReporteEmailWorker handles JobTypeReporteEmail.
type ReporteEmailWorker struct {
	reportes GeneradorPDF
	mailer   Enviador
	cb       *infra.CircuitBreaker
	appName  string
}

func NewReporteEmailWorker(reportes GeneradorPDF, mailer Enviador, cb *infra.CircuitBreaker, appName string) *ReporteEmailWorker {
	return &ReporteEmailWorker{reportes: reportes, mailer: mailer, cb: cb, appName: appName}
}

func (w *ReporteEmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload dto.ReporteEmailJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Permanent(fmt.Errorf("email_worker: invalid payload: %w", err))
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}
	ventana, ok := finanzas.ParseVentana(payload.Window)
	if !ok {
		ventana = finanzas.VentanaMes
	}
	if !w.mailer.Configurado() {
		return Permanent(ErrSMTPNoConfigurado)
	}

	pdf, err := w.reportes.DashboardPDF(ctx, ventana)
	if err != nil {
		return fmt.Errorf("email_worker: rendering pdf: %w", err)
	}

	subject := fmt.Sprintf("%s - Reporte %s", w.appName, finanzas.EtiquetaVentana(ventana))
	body := fmt.Sprintf("Adjuntamos el reporte del dashboard (%s).\n\n%s", finanzas.EtiquetaVentana(ventana), w.appName)
	send := func() error {
		return w.mailer.SendReporte(payload.ToEmail, subject, body, pdf, "reporte-dashboard.pdf", "application/pdf")
	}
	if w.cb != nil {
		err = w.cb.Execute(send)
	} else {
		err = send()
	}
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("ventana", string(ventana)).Msg("email_worker: reporte sent")
	return nil
}
