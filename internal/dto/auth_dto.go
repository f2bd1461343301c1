package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// PreferenciasRequest updates theme and/or last view; nil leaves a value as is.
type PreferenciasRequest struct {
	Theme *string `json:"theme" validate:"omitempty,oneof=light dark"`
	View  *string `json:"view"  validate:"omitempty,oneof=DASHBOARD NEW_TRANSACTION CLIENTS"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Theme  string `json:"theme"`
	View   string `json:"view"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}

type SignupResponse struct {
	Message string          `json:"message"`
	User    UsuarioResponse `json:"user"`
}
