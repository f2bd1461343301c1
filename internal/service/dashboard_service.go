package service

import (
	"context"
	"time"

	"energen/internal/dto"
	"energen/internal/finanzas"
	"energen/internal/model"
	"energen/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the full set of records the dashboard is computed from.
type Snapshot struct {
	Clientes      []model.Cliente     `json:"clientes"`
	Transacciones []model.Transaccion `json:"transacciones"`
}

type DashboardService interface {
	// Cargar loads clients and transactions together. Either both lists are
	// returned or ErrCargaDatos.
	Cargar(ctx context.Context) (*Snapshot, error)
	Datos(ctx context.Context) (*dto.DatosResponse, error)
	Estadisticas(ctx context.Context, ventana finanzas.Ventana) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	clientes      repository.ClienteRepository
	transacciones repository.TransaccionRepository
	cache         Cache
	ttl           time.Duration
	now           func() time.Time
}

// NewDashboardService builds the service. A nil cache disables caching and a
// nil clock means time.Now.
func NewDashboardService(
	clientes repository.ClienteRepository,
	transacciones repository.TransaccionRepository,
	cache Cache,
	ttl time.Duration,
	now func() time.Time,
) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{clientes: clientes, transacciones: transacciones, cache: cache, ttl: ttl, now: now}
}

func (s *dashboardService) Cargar(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	if s.cache != nil && s.cache.Get(ctx, SnapshotCacheKey, &snap) {
		return &snap, nil
	}

	var (
		clientes []model.Cliente
		txs      []model.Transaccion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clientes, err = s.clientes.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.transacciones.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("dashboard: carga conjunta fallida")
		return nil, ErrCargaDatos
	}

	if clientes == nil {
		clientes = []model.Cliente{}
	}
	if txs == nil {
		txs = []model.Transaccion{}
	}
	snap = Snapshot{Clientes: clientes, Transacciones: txs}
	if s.cache != nil && s.ttl > 0 {
		s.cache.Set(ctx, SnapshotCacheKey, snap, s.ttl)
	}
	return &snap, nil
}

func (s *dashboardService) Datos(ctx context.Context) (*dto.DatosResponse, error) {
	snap, err := s.Cargar(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DatosResponse{
		Clients:      make([]dto.ClienteResponse, len(snap.Clientes)),
		Transactions: make([]dto.TransaccionResponse, len(snap.Transacciones)),
	}
	for i, c := range snap.Clientes {
		resp.Clients[i] = mapCliente(c)
	}
	for i, t := range snap.Transacciones {
		resp.Transactions[i] = mapTransaccion(t)
	}
	return resp, nil
}

func (s *dashboardService) Estadisticas(ctx context.Context, ventana finanzas.Ventana) (*dto.DashboardResponse, error) {
	snap, err := s.Cargar(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &dto.DashboardResponse{
		Window:       ventana,
		WindowLabel:  finanzas.EtiquetaVentana(ventana),
		ChartTitle:   finanzas.TituloSerie(ventana),
		Estadisticas: finanzas.CalcularEstadisticas(snap.Transacciones, ventana, now),
		GeneratedAt:  now,
	}, nil
}
