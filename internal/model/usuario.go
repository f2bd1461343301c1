package model

import (
	"time"

	"github.com/google/uuid"
)

// Tema is the UI color scheme chosen by a user.
type Tema string

const (
	TemaClaro  Tema = "light"
	TemaOscuro Tema = "dark"
)

// Alternar returns the opposite theme.
func (t Tema) Alternar() Tema {
	if t == TemaOscuro {
		return TemaClaro
	}
	return TemaOscuro
}

func (t Tema) Valido() bool { return t == TemaClaro || t == TemaOscuro }

// Vista is the screen the UI shows. It is a plain enum: any value may follow
// any other.
type Vista string

const (
	VistaDashboard        Vista = "DASHBOARD"
	VistaNuevaTransaccion Vista = "NEW_TRANSACTION"
	VistaClientes         Vista = "CLIENTS"
)

func (v Vista) Valida() bool {
	switch v {
	case VistaDashboard, VistaNuevaTransaccion, VistaClientes:
		return true
	}
	return false
}

// Usuario is an operator of the system. Login is by email.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Tema         Tema      `gorm:"type:varchar(10);not null;default:'light'"`
	UltimaVista  Vista     `gorm:"type:varchar(20);not null;default:'DASHBOARD'"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
