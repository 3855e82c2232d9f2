package request

// TechnicianRequest represents a technician create request
type TechnicianRequest struct {
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
	Name           string  `json:"name" binding:"required,max=255"`
	Phone          *string `json:"phone" binding:"omitempty,max=50"`
	EmployeeNumber string  `json:"employee_number" binding:"required,max=50"`
	Specialty      *string `json:"specialty" binding:"omitempty,max=100"`
	Active         *bool   `json:"active"`
}

// UpdateTechnicianRequest represents a technician update request
type UpdateTechnicianRequest struct {
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
	Name           string  `json:"name" binding:"omitempty,max=255"`
	Phone          *string `json:"phone" binding:"omitempty,max=50"`
	EmployeeNumber string  `json:"employee_number" binding:"omitempty,max=50"`
	Specialty      *string `json:"specialty" binding:"omitempty,max=100"`
	Active         *bool   `json:"active"`
}
