package dto

import "github.com/prop101/strataops/internal/app/models"

// ContractorRequest carries contractor create/update payloads.
type ContractorRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required,oneof='Insurance Broker' 'Insurance Valuer' Consultant General Compliance"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
}

// ToModel converts the request into a domain contractor.
func (r *ContractorRequest) ToModel() *models.Contractor {
	return &models.Contractor{
		Name:          r.Name,
		Category:      models.ContractorCategory(r.Category),
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Phone:         r.Phone,
	}
}
