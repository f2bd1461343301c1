package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"energen/internal/dto"
	"energen/internal/finanzas"
	"energen/internal/model"
	"energen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ClienteService interface {
	Listar(ctx context.Context) (*dto.ListaClientesResponse, error)
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo  repository.ClienteRepository
	cache Cache
}

func NewClienteService(repo repository.ClienteRepository, cache Cache) ClienteService {
	return &clienteService{repo: repo, cache: cache}
}

func (s *clienteService) Listar(ctx context.Context) (*dto.ListaClientesResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("clientes: listado fallido")
		return nil, ErrCargaDatos
	}
	resp := &dto.ListaClientesResponse{Clients: make([]dto.ClienteResponse, len(clientes))}
	for i, c := range clientes {
		resp.Clients[i] = mapCliente(c)
	}
	if len(clientes) == 0 {
		resp.EmptyMessage = finanzas.MensajeSinClientes
	}
	return resp, nil
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nombre:   strings.TrimSpace(req.Name),
		CUIT:     strings.TrimSpace(req.CUIT),
		Telefono: strings.TrimSpace(req.Phone),
	}
	if c.Nombre == "" {
		return nil, nuevaValidacion("name", "El nombre del cliente es obligatorio.")
	}
	if err := s.repo.Create(ctx, c); err != nil {
		log.Error().Err(err).Str("nombre", c.Nombre).Msg("clientes: alta fallida")
		return nil, fmt.Errorf("%w: %v", ErrGuardar, err)
	}
	invalidarSnapshot(ctx, s.cache)
	resp := mapCliente(*c)
	return &resp, nil
}

// Eliminar removes the client and, through the cascade, its transacciones.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClienteNoEncontrado
		}
		log.Error().Err(err).Str("cliente_id", id.String()).Msg("clientes: baja fallida")
		return fmt.Errorf("%w: %v", ErrEliminar, err)
	}
	invalidarSnapshot(ctx, s.cache)
	return nil
}

func mapCliente(c model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:    c.ID.String(),
		Name:  c.Nombre,
		CUIT:  c.CUIT,
		Phone: c.Telefono,
	}
}
