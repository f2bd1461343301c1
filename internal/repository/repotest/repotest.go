// Package repotest provides in-memory repositories for service and handler
// tests. They mimic the ordering and error behaviour of the gorm-backed
// implementations.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"energen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Store ─────────────────────────────────────────────────────────────────────

type Store struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]model.Cliente
	txs      []model.Transaccion
	usuarios map[uuid.UUID]*model.Usuario

	// Setting any of these makes the matching operation fail.
	ErrListClientes      error
	ErrListTransacciones error
	ErrCreate            error
	ErrDelete            error
}

func NewStore() *Store {
	return &Store{
		clientes: make(map[uuid.UUID]model.Cliente),
		usuarios: make(map[uuid.UUID]*model.Usuario),
	}
}

// Clientes returns the store as a repository.ClienteRepository.
func (s *Store) Clientes() *ClienteRepo { return &ClienteRepo{s} }

// Transacciones returns the store as a repository.TransaccionRepository.
func (s *Store) Transacciones() *TransaccionRepo { return &TransaccionRepo{s} }

// Usuarios returns the store as a repository.UsuarioRepository.
func (s *Store) Usuarios() *UsuarioRepo { return &UsuarioRepo{s} }

// ── Clientes ──────────────────────────────────────────────────────────────────

type ClienteRepo struct{ s *Store }

func (r *ClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrCreate != nil {
		return r.s.ErrCreate
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.s.clientes[c.ID] = *c
	return nil
}

func (r *ClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *ClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrListClientes != nil {
		return nil, r.s.ErrListClientes
	}
	out := make([]model.Cliente, 0, len(r.s.clientes))
	for _, c := range r.s.clientes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *ClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrDelete != nil {
		return r.s.ErrDelete
	}
	if _, ok := r.s.clientes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.clientes, id)
	kept := r.s.txs[:0]
	for _, t := range r.s.txs {
		if t.ClienteID != id {
			kept = append(kept, t)
		}
	}
	r.s.txs = kept
	return nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

type TransaccionRepo struct{ s *Store }

func (r *TransaccionRepo) Create(_ context.Context, t *model.Transaccion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrCreate != nil {
		return r.s.ErrCreate
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	stored := *t
	stored.ClienteNombre = ""
	r.s.txs = append(r.s.txs, stored)
	return nil
}

func (r *TransaccionRepo) List(_ context.Context) ([]model.Transaccion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrListTransacciones != nil {
		return nil, r.s.ErrListTransacciones
	}
	out := make([]model.Transaccion, len(r.s.txs))
	copy(out, r.s.txs)
	for i := range out {
		if c, ok := r.s.clientes[out[i].ClienteID]; ok {
			out[i].ClienteNombre = c.Nombre
		} else {
			out[i].ClienteNombre = model.ClienteEliminado
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Fecha.After(out[j].Fecha)
	})
	return out, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type UsuarioRepo struct{ s *Store }

func (r *UsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.usuarios {
		if strings.EqualFold(existing.Email, u.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Tema == "" {
		u.Tema = model.TemaClaro
	}
	if u.UltimaVista == "" {
		u.UltimaVista = model.VistaDashboard
	}
	r.s.usuarios[u.ID] = u
	return nil
}

func (r *UsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.usuarios {
		if strings.EqualFold(u.Email, email) && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *UsuarioRepo) UpdatePreferencias(_ context.Context, id uuid.UUID, tema model.Tema, vista model.Vista) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Tema = tema
	u.UltimaVista = vista
	return nil
}
