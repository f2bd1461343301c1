package repository

import (
	"context"

	"energen/internal/model"

	"gorm.io/gorm"
)

type TransaccionRepository interface {
	Create(ctx context.Context, t *model.Transaccion) error
	// List returns every transaccion, newest fecha first, with ClienteNombre
	// joined in.
	List(ctx context.Context) ([]model.Transaccion, error)
}

type transaccionRepo struct{ db *gorm.DB }

func NewTransaccionRepository(db *gorm.DB) TransaccionRepository {
	return &transaccionRepo{db: db}
}

func (r *transaccionRepo) Create(ctx context.Context, t *model.Transaccion) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transaccionRepo) List(ctx context.Context) ([]model.Transaccion, error) {
	var txs []model.Transaccion
	err := r.db.WithContext(ctx).
		Model(&model.Transaccion{}).
		Select("transacciones.*, COALESCE(clientes.nombre, ?) AS cliente_nombre", model.ClienteEliminado).
		Joins("LEFT JOIN clientes ON clientes.id = transacciones.cliente_id").
		Order("transacciones.fecha desc").
		Order("transacciones.created_at desc").
		Find(&txs).Error
	return txs, err
}
