package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted for a transaccion.
const (
	MetodoEfectivo      = "EFECTIVO"
	MetodoTransferencia = "TRANSFERENCIA"
	MetodoCheque        = "CHEQUE"
	MetodoECheq         = "E_CHEQ"
)

// Transaccion is an invoiced service and the way it was paid.
// MetodoPago: "EFECTIVO" | "TRANSFERENCIA" | "CHEQUE" | "E_CHEQ"
//
// NumeroCheque, BancoEmisor and FechaCobroCheque are set together, and only
// for CHEQUE / E_CHEQ. Rows are insert-only.
type Transaccion struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha         time.Time       `gorm:"type:date;not null"`
	NumeroFactura string          `gorm:"not null"`
	Descripcion   string          `gorm:"not null"`
	ClienteID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MetodoPago    string          `gorm:"type:varchar(20);not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	NumeroCheque     *string
	BancoEmisor      *string
	FechaCobroCheque *time.Time `gorm:"type:date"`

	CreatedAt time.Time

	// ClienteNombre is filled by the list query join and never written back.
	ClienteNombre string `gorm:"->;-:migration"`
}

func (Transaccion) TableName() string { return "transacciones" }
