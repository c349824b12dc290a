package request

type CreateContractor struct {
	Name      string `json:"name" validate:"required"`
	Trade     string `json:"trade"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	CISStatus string `json:"cisStatus"`
}

type UpdateContractor struct {
	Name      *string `json:"name,omitempty"`
	Trade     *string `json:"trade,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	CISStatus *string `json:"cisStatus,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}
