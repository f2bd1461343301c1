package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"energen/internal/finanzas"
	"energen/internal/model"
	"energen/internal/repository/repotest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ahora = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func fijo() time.Time { return ahora }

func sembrarDashboard(t *testing.T, store *repotest.Store) {
	t.Helper()
	ctx := context.Background()
	c := &model.Cliente{Nombre: "Constructora Norte"}
	require.NoError(t, store.Clientes().Create(ctx, c))

	cobro := ahora.AddDate(0, 0, 20)
	vencido := ahora.AddDate(0, 0, -2)
	rows := []model.Transaccion{
		{Fecha: ahora.AddDate(0, 0, -1), ClienteID: c.ID, MetodoPago: model.MetodoEfectivo, Monto: decimal.NewFromInt(1000)},
		{Fecha: ahora.AddDate(0, 0, -3), ClienteID: c.ID, MetodoPago: model.MetodoCheque, Monto: decimal.NewFromInt(500), FechaCobroCheque: &cobro},
		{Fecha: ahora.AddDate(0, 0, -10), ClienteID: c.ID, MetodoPago: model.MetodoECheq, Monto: decimal.NewFromInt(300), FechaCobroCheque: &vencido},
		{Fecha: ahora.AddDate(0, -3, 0), ClienteID: c.ID, MetodoPago: model.MetodoTransferencia, Monto: decimal.NewFromInt(9000)},
	}
	for i := range rows {
		require.NoError(t, store.Transacciones().Create(ctx, &rows[i]))
	}
}

func TestDashboardService_Estadisticas(t *testing.T) {
	store := repotest.NewStore()
	sembrarDashboard(t, store)
	svc := NewDashboardService(store.Clientes(), store.Transacciones(), nil, 0, fijo)

	tests := []struct {
		ventana   finanzas.Ventana
		total     int64
		pendiente int64
	}{
		{finanzas.VentanaSemana, 1500, 500},
		{finanzas.VentanaMes, 1800, 500},
		{finanzas.VentanaTodo, 10800, 500},
	}
	for _, tc := range tests {
		t.Run(string(tc.ventana), func(t *testing.T) {
			resp, err := svc.Estadisticas(context.Background(), tc.ventana)
			require.NoError(t, err)
			assert.True(t, resp.Total.Equal(decimal.NewFromInt(tc.total)), "total %s", resp.Total)
			assert.True(t, resp.ChequesPendientes.Equal(decimal.NewFromInt(tc.pendiente)))
			assert.True(t, resp.Cobrado.Add(resp.ChequesPendientes).Equal(resp.Total))
			assert.Equal(t, tc.ventana, resp.Window)
			assert.Equal(t, ahora, resp.GeneratedAt)
		})
	}
}

func TestDashboardService_CargaConjuntaFalla(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*repotest.Store)
	}{
		{"clientes", func(s *repotest.Store) { s.ErrListClientes = errors.New("db down") }},
		{"transacciones", func(s *repotest.Store) { s.ErrListTransacciones = errors.New("db down") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := repotest.NewStore()
			sembrarDashboard(t, store)
			tc.setup(store)
			svc := NewDashboardService(store.Clientes(), store.Transacciones(), nil, 0, fijo)

			snap, err := svc.Cargar(context.Background())
			assert.ErrorIs(t, err, ErrCargaDatos)
			assert.Nil(t, snap)

			datos, err := svc.Datos(context.Background())
			assert.ErrorIs(t, err, ErrCargaDatos)
			assert.Nil(t, datos)
		})
	}
}

func TestDashboardService_CargarVacioNoNil(t *testing.T) {
	store := repotest.NewStore()
	svc := NewDashboardService(store.Clientes(), store.Transacciones(), nil, 0, fijo)

	datos, err := svc.Datos(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, datos.Clients)
	assert.NotNil(t, datos.Transactions)

	resp, err := svc.Estadisticas(context.Background(), finanzas.VentanaMes)
	require.NoError(t, err)
	assert.True(t, resp.Total.IsZero())
	assert.NotNil(t, resp.Serie)
}

func TestDashboardService_UsaCache(t *testing.T) {
	store := repotest.NewStore()
	sembrarDashboard(t, store)
	cache := newMemCache()
	svc := NewDashboardService(store.Clientes(), store.Transacciones(), cache, time.Minute, fijo)

	primero, err := svc.Cargar(context.Background())
	require.NoError(t, err)
	require.Len(t, primero.Transacciones, 4)

	// With the snapshot cached a store outage is not noticed.
	store.ErrListTransacciones = errors.New("db down")
	segundo, err := svc.Cargar(context.Background())
	require.NoError(t, err)
	assert.Len(t, segundo.Transacciones, 4)
	assert.Equal(t, "Constructora Norte", segundo.Transacciones[0].ClienteNombre)

	// A write elsewhere drops the snapshot.
	invalidarSnapshot(context.Background(), cache)
	_, err = svc.Cargar(context.Background())
	assert.ErrorIs(t, err, ErrCargaDatos)
}

func TestDashboardService_DatosIncluyeNombreCliente(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	c := &model.Cliente{Nombre: "Fantasma"}
	require.NoError(t, store.Clientes().Create(ctx, c))
	require.NoError(t, store.Transacciones().Create(ctx, &model.Transaccion{
		Fecha: ahora, ClienteID: c.ID, MetodoPago: model.MetodoEfectivo, Monto: decimal.NewFromInt(1),
	}))

	svc := NewDashboardService(store.Clientes(), store.Transacciones(), nil, 0, fijo)
	datos, err := svc.Datos(ctx)
	require.NoError(t, err)
	require.Len(t, datos.Transactions, 1)
	assert.Equal(t, "Fantasma", datos.Transactions[0].ClientName)
}
