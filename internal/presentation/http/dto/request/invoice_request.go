package request

import "github.com/shopspring/decimal"

// GenerateInvoiceRequest represents an invoice generation request
type GenerateInvoiceRequest struct {
	JobID             string          `json:"job_id" binding:"required,uuid"`
	DueDays           *int            `json:"due_days" binding:"omitempty,min=1"`
	AdditionalCharges decimal.Decimal `json:"additional_charges"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
}
