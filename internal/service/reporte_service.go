package service

import (
	"context"
	"fmt"
	"strings"

	"energen/internal/dto"
	"energen/internal/finanzas"
	"energen/internal/infra"

	"github.com/rs/zerolog/log"
)

// EncoladorReportes hands report emails to the background workers.
type EncoladorReportes interface {
	EnqueueReporteEmail(ctx context.Context, job dto.ReporteEmailJob) error
}

type ReporteService interface {
	DashboardPDF(ctx context.Context, ventana finanzas.Ventana) ([]byte, error)
	TransaccionesXLSX(ctx context.Context, filtro dto.FiltroTransacciones) ([]byte, error)
	// EnviarPorEmail queues the dashboard PDF for delivery; it does not wait
	// for the mail to go out.
	EnviarPorEmail(ctx context.Context, req dto.ReporteEmailRequest) error
}

type reporteService struct {
	dashboard     DashboardService
	transacciones TransaccionService
	encolador     EncoladorReportes
	appName       string
}

func NewReporteService(dashboard DashboardService, transacciones TransaccionService, encolador EncoladorReportes, appName string) ReporteService {
	return &reporteService{dashboard: dashboard, transacciones: transacciones, encolador: encolador, appName: appName}
}

func (s *reporteService) DashboardPDF(ctx context.Context, ventana finanzas.Ventana) ([]byte, error) {
	stats, err := s.dashboard.Estadisticas(ctx, ventana)
	if err != nil {
		return nil, err
	}
	return infra.GenerarReportePDF(infra.ReportePDF{
		AppName:      s.appName,
		Ventana:      ventana,
		Estadisticas: stats.Estadisticas,
		GeneradoEn:   stats.GeneratedAt,
	})
}

func (s *reporteService) TransaccionesXLSX(ctx context.Context, filtro dto.FiltroTransacciones) ([]byte, error) {
	txs, err := s.transacciones.Filtradas(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return infra.GenerarTransaccionesXLSX(txs)
}

func (s *reporteService) EnviarPorEmail(ctx context.Context, req dto.ReporteEmailRequest) error {
	ventana := finanzas.VentanaMes
	if req.Window != "" {
		v, ok := finanzas.ParseVentana(req.Window)
		if !ok {
			return nuevaValidacion("window", "Periodo invalido.")
		}
		ventana = v
	}
	if s.encolador == nil {
		return fmt.Errorf("cola de reportes no disponible")
	}
	job := dto.ReporteEmailJob{ToEmail: strings.TrimSpace(req.Email), Window: string(ventana)}
	if err := s.encolador.EnqueueReporteEmail(ctx, job); err != nil {
		return fmt.Errorf("encolando reporte: %w", err)
	}
	log.Info().Str("to", job.ToEmail).Str("ventana", job.Window).Msg("reportes: envio encolado")
	return nil
}
