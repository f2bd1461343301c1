package model

import (
	"time"

	"github.com/google/uuid"
)

// ClienteEliminado is the display name projected onto a transaction whose
// client row no longer exists.
const ClienteEliminado = "Cliente Eliminado"

// Cliente is a customer of the company. Rows are created and deleted, never
// updated in place; deleting one cascades to its transacciones.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	CUIT      string    `gorm:"column:cuit;not null;default:''"`
	Telefono  string    `gorm:"not null;default:''"`
	CreatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
