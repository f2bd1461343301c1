package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=200"`
	CUIT  string `json:"cuit"  validate:"max=20"`
	Phone string `json:"phone" validate:"max=50"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	CUIT  string `json:"cuit"`
	Phone string `json:"phone"`
}

type ListaClientesResponse struct {
	Clients      []ClienteResponse `json:"clients"`
	EmptyMessage string            `json:"empty_message,omitempty"`
}
