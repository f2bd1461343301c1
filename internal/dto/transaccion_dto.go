package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearTransaccionRequest mirrors the "Nueva Facturación" form. Dates are
// YYYY-MM-DD. The check fields are required for CHEQUE / E_CHEQ and dropped
// for every other method.
type CrearTransaccionRequest struct {
	Date             string          `json:"date"               validate:"required,datetime=2006-01-02"`
	InvoiceNumber    string          `json:"invoice_number"     validate:"required,max=50"`
	Description      string          `json:"description"        validate:"required,max=2000"`
	ClientID         string          `json:"client_id"`
	PaymentMethod    string          `json:"payment_method"     validate:"required,oneof=EFECTIVO TRANSFERENCIA CHEQUE E_CHEQ"`
	Amount           decimal.Decimal `json:"amount"             validate:"min=0"`
	CheckNumber      *string         `json:"check_number"       validate:"omitempty,max=50"`
	CheckPaymentDate *string         `json:"check_payment_date"`
	BankIssuer       *string         `json:"bank_issuer"        validate:"omitempty,max=100"`
}

// FiltroTransacciones are the list controls: free text and payment method
// ("ALL" for every method).
type FiltroTransacciones struct {
	Q      string `form:"q"`
	Metodo string `form:"metodo,default=ALL"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransaccionResponse struct {
	ID                 string          `json:"id"`
	Date               string          `json:"date"`
	InvoiceNumber      string          `json:"invoice_number"`
	Description        string          `json:"description"`
	ClientID           string          `json:"client_id"`
	ClientName         string          `json:"client_name"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodLabel string          `json:"payment_method_label"`
	Amount             decimal.Decimal `json:"amount"`
	CheckNumber        *string         `json:"check_number,omitempty"`
	CheckPaymentDate   *string         `json:"check_payment_date,omitempty"`
	BankIssuer         *string         `json:"bank_issuer,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

type ListaTransaccionesResponse struct {
	Transactions []TransaccionResponse `json:"transactions"`
	Loaded       int                   `json:"loaded"`
	Matched      int                   `json:"matched"`
	EmptyMessage string                `json:"empty_message,omitempty"`
}
