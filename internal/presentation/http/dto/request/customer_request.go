package request

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	VATNumber *string `json:"vat_number" binding:"omitempty,max=50"`
	Address   *string `json:"address"`
	City      *string `json:"city" binding:"omitempty,max=100"`
	Notes     *string `json:"notes"`
}

// UpdateCustomerRequest relaxes the name requirement for partial updates
type UpdateCustomerRequest struct {
	Name      string  `json:"name" binding:"omitempty,max=255"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	VATNumber *string `json:"vat_number" binding:"omitempty,max=50"`
	Address   *string `json:"address"`
	City      *string `json:"city" binding:"omitempty,max=100"`
	Notes     *string `json:"notes"`
}
