package models

import "time"

// ContractorCategory groups contractors by the service they provide.
type ContractorCategory string

const (
	ContractorInsuranceBroker ContractorCategory = "Insurance Broker"
	ContractorInsuranceValuer ContractorCategory = "Insurance Valuer"
	ContractorConsultant      ContractorCategory = "Consultant"
	ContractorGeneral         ContractorCategory = "General"
	ContractorCompliance      ContractorCategory = "Compliance"
)

// Contractor is an external service provider referenced from properties.
type Contractor struct {
	ID            int64              `json:"id" db:"id"`
	Name          string             `json:"name" db:"name"`
	Category      ContractorCategory `json:"category" db:"category"`
	ContactPerson string             `json:"contactPerson" db:"contact_person"`
	Email         string             `json:"email" db:"email"`
	Phone         string             `json:"phone" db:"phone"`
	CreatedAt     time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" db:"updated_at"`
}
