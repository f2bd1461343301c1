package service

import (
	"context"
	"errors"
	"time"
)

var (
	ErrClienteNoEncontrado = errors.New("Cliente no encontrado")
	ErrCargaDatos          = errors.New("No se pudieron cargar los datos.")
	ErrGuardar             = errors.New("Error al guardar.")
	ErrEliminar            = errors.New("Error al eliminar.")

	ErrCredenciales        = errors.New("credenciales invalidas")
	ErrEmailRegistrado     = errors.New("el email ya esta registrado")
	ErrTokenInvalido       = errors.New("refresh token invalido o expirado")
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado o inactivo")
)

// ValidacionError is a rejected input. Nothing reaches the store when one is
// returned.
type ValidacionError struct {
	Mensaje string
	Campos  map[string]string
}

func (e *ValidacionError) Error() string { return e.Mensaje }

func nuevaValidacion(campo, mensaje string) *ValidacionError {
	return &ValidacionError{Mensaje: mensaje, Campos: map[string]string{campo: mensaje}}
}

// SnapshotCacheKey holds the joint clients + transactions load.
const SnapshotCacheKey = "energen:snapshot"

// Cache is the optional read-through cache for the snapshot. Implementations
// must treat every failure as a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

func invalidarSnapshot(ctx context.Context, c Cache) {
	if c != nil {
		c.Delete(ctx, SnapshotCacheKey)
	}
}
