package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"energen/internal/dto"
	"energen/internal/finanzas"
	"energen/internal/model"
	"energen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const layoutFecha = "2006-01-02"

const MensajeSeleccioneCliente = "Por favor seleccione un cliente."

type TransaccionService interface {
	Listar(ctx context.Context, filtro dto.FiltroTransacciones) (*dto.ListaTransaccionesResponse, error)
	// Filtradas is Listar without the response mapping; exports use it.
	Filtradas(ctx context.Context, filtro dto.FiltroTransacciones) ([]model.Transaccion, error)
	Crear(ctx context.Context, req dto.CrearTransaccionRequest) (*dto.TransaccionResponse, error)
}

type transaccionService struct {
	repo     repository.TransaccionRepository
	clientes repository.ClienteRepository
	cache    Cache
}

func NewTransaccionService(repo repository.TransaccionRepository, clientes repository.ClienteRepository, cache Cache) TransaccionService {
	return &transaccionService{repo: repo, clientes: clientes, cache: cache}
}

func (s *transaccionService) Listar(ctx context.Context, filtro dto.FiltroTransacciones) (*dto.ListaTransaccionesResponse, error) {
	todas, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("transacciones: listado fallido")
		return nil, ErrCargaDatos
	}
	filtradas := finanzas.FiltrarTransacciones(todas, filtro.Q, filtro.Metodo)

	resp := &dto.ListaTransaccionesResponse{
		Transactions: make([]dto.TransaccionResponse, len(filtradas)),
		Loaded:       len(todas),
		Matched:      len(filtradas),
		EmptyMessage: finanzas.MensajeVacio(len(todas), len(filtradas)),
	}
	for i, t := range filtradas {
		resp.Transactions[i] = mapTransaccion(t)
	}
	return resp, nil
}

func (s *transaccionService) Filtradas(ctx context.Context, filtro dto.FiltroTransacciones) ([]model.Transaccion, error) {
	todas, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("transacciones: listado fallido")
		return nil, ErrCargaDatos
	}
	return finanzas.FiltrarTransacciones(todas, filtro.Q, filtro.Metodo), nil
}

func (s *transaccionService) Crear(ctx context.Context, req dto.CrearTransaccionRequest) (*dto.TransaccionResponse, error) {
	t, err := s.validar(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		log.Error().Err(err).Str("factura", t.NumeroFactura).Msg("transacciones: alta fallida")
		return nil, fmt.Errorf("%w: %v", ErrGuardar, err)
	}
	invalidarSnapshot(ctx, s.cache)

	log.Info().
		Str("id", t.ID.String()).
		Str("factura", t.NumeroFactura).
		Str("metodo", t.MetodoPago).
		Str("monto", t.Monto.StringFixed(2)).
		Msg("transacciones: registrada")

	resp := mapTransaccion(*t)
	return &resp, nil
}

// validar turns the form into a row ready to insert. Check fields are kept
// only for check methods, all three required; for any other method they are
// cleared.
func (s *transaccionService) validar(ctx context.Context, req dto.CrearTransaccionRequest) (*model.Transaccion, error) {
	clienteIDStr := strings.TrimSpace(req.ClientID)
	if clienteIDStr == "" {
		return nil, nuevaValidacion("client_id", MensajeSeleccioneCliente)
	}
	clienteID, err := uuid.Parse(clienteIDStr)
	if err != nil {
		return nil, nuevaValidacion("client_id", MensajeSeleccioneCliente)
	}
	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nuevaValidacion("client_id", MensajeSeleccioneCliente)
		}
		return nil, fmt.Errorf("buscando cliente: %w", err)
	}

	fecha, err := time.Parse(layoutFecha, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, nuevaValidacion("date", "Fecha invalida, use AAAA-MM-DD.")
	}
	if !finanzas.MetodoValido(req.PaymentMethod) {
		return nil, nuevaValidacion("payment_method", "Metodo de pago invalido.")
	}
	if req.Amount.IsNegative() {
		return nil, nuevaValidacion("amount", "El monto no puede ser negativo.")
	}

	t := &model.Transaccion{
		Fecha:         fecha,
		NumeroFactura: strings.TrimSpace(req.InvoiceNumber),
		Descripcion:   strings.TrimSpace(req.Description),
		ClienteID:     cliente.ID,
		ClienteNombre: cliente.Nombre,
		MetodoPago:    req.PaymentMethod,
		Monto:         req.Amount.Round(2),
	}
	if t.NumeroFactura == "" {
		return nil, nuevaValidacion("invoice_number", "El numero de factura es obligatorio.")
	}
	if t.Descripcion == "" {
		return nil, nuevaValidacion("description", "La descripcion es obligatoria.")
	}
	if !finanzas.EsCheque(req.PaymentMethod) {
		return t, nil
	}

	campos := map[string]string{}
	numero := recortar(req.CheckNumber)
	banco := recortar(req.BankIssuer)
	cobro := recortar(req.CheckPaymentDate)
	if numero == "" {
		campos["check_number"] = "Requerido para cheques."
	}
	if banco == "" {
		campos["bank_issuer"] = "Requerido para cheques."
	}
	var fechaCobro time.Time
	if cobro == "" {
		campos["check_payment_date"] = "Requerido para cheques."
	} else if fechaCobro, err = time.Parse(layoutFecha, cobro); err != nil {
		campos["check_payment_date"] = "Fecha invalida, use AAAA-MM-DD."
	}
	if len(campos) > 0 {
		return nil, &ValidacionError{Mensaje: "Complete los datos del cheque.", Campos: campos}
	}
	t.NumeroCheque = &numero
	t.BancoEmisor = &banco
	t.FechaCobroCheque = &fechaCobro
	return t, nil
}

func recortar(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func mapTransaccion(t model.Transaccion) dto.TransaccionResponse {
	r := dto.TransaccionResponse{
		ID:                 t.ID.String(),
		Date:               t.Fecha.Format(layoutFecha),
		InvoiceNumber:      t.NumeroFactura,
		Description:        t.Descripcion,
		ClientID:           t.ClienteID.String(),
		ClientName:         t.ClienteNombre,
		PaymentMethod:      t.MetodoPago,
		PaymentMethodLabel: finanzas.EtiquetaMetodo(t.MetodoPago),
		Amount:             t.Monto,
		CheckNumber:        t.NumeroCheque,
		BankIssuer:         t.BancoEmisor,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
	}
	if t.FechaCobroCheque != nil {
		f := t.FechaCobroCheque.Format(layoutFecha)
		r.CheckPaymentDate = &f
	}
	return r
}
