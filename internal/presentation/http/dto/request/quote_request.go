package request

import "github.com/shopspring/decimal"

// QuoteItemRequest represents a quote line item
type QuoteItemRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description *string         `json:"description"`
	ItemType    string          `json:"item_type" binding:"required,oneof=service part labor fee discount"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest represents a quote creation request
type CreateQuoteRequest struct {
	CustomerID     *string            `json:"customer_id" binding:"omitempty,uuid"`
	Title          string             `json:"title" binding:"required,max=255"`
	Description    *string            `json:"description"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Items          []QuoteItemRequest `json:"items" binding:"dive"`
}

// UpdateQuoteRequest represents a quote update request. A nil Items leaves
// the existing items untouched; a non-nil slice replaces them wholesale.
type UpdateQuoteRequest struct {
	Title          *string            `json:"title" binding:"omitempty,max=255"`
	Description    *string            `json:"description"`
	CustomerID     *string            `json:"customer_id" binding:"omitempty,uuid"`
	DiscountAmount *decimal.Decimal   `json:"discount_amount"`
	Items          []QuoteItemRequest `json:"items" binding:"omitempty,dive"`
}

// ApproveQuoteRequest carries the optional customer sign-off
type ApproveQuoteRequest struct {
	Signature *string `json:"signature"`
	SignedBy  *string `json:"signed_by" binding:"omitempty,max=255"`
}
