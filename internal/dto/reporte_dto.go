package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ReporteEmailRequest.Window accepts the same values as ?ventana= and is
// checked by the service.
type ReporteEmailRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Window string `json:"window"`
}

// ReporteEmailJob is the payload queued for the email worker.
type ReporteEmailJob struct {
	ToEmail string `json:"to_email"`
	Window  string `json:"window"`
}
