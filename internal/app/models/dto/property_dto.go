package dto

import (
	"fmt"
	"time"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
	"github.com/prop101/strataops/internal/pkg/dates"
)

// PropertyRequest carries property create/update payloads. Dates arrive as
// ISO strings and are parsed here so the services only ever see time.Time.
type PropertyRequest struct {
	BcNumber       string  `json:"bcNumber" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Address        string  `json:"address"`
	Units          int     `json:"units" binding:"min=0"`
	Type           *string `json:"type,omitempty" binding:"omitempty,oneof='Body Corporate' 'Incorporated Society'"`
	ManagerName    string  `json:"managerName"`
	ManagementFee  float64 `json:"managementFee"`
	OnboardingType *string `json:"onboardingType,omitempty" binding:"omitempty,oneof='New Development' 'Takeover'"`

	FinancialYearEnd *string `json:"financialYearEnd,omitempty"`
	IsocNomDaysPrior *int    `json:"isocNomDaysPrior,omitempty" binding:"omitempty,min=1"`

	InsuranceExpiry *string `json:"insuranceExpiry,omitempty"`
	InsuranceBroker string  `json:"insuranceBroker"`

	HasBwof        bool    `json:"hasBwof"`
	BwofExpiry     *string `json:"bwofExpiry,omitempty"`
	BwofConsultant string  `json:"bwofConsultant"`

	HasLtmp             bool    `json:"hasLtmp"`
	LtmpCompletedDate   *string `json:"ltmpCompletedDate,omitempty"`
	NextLtmpRenewalDate *string `json:"nextLtmpRenewalDate,omitempty"`
}

// ToModel converts the request into a domain property. Malformed dates are
// reported as validation failures naming the offending field.
func (r *PropertyRequest) ToModel() (*models.Property, error) {
	property := &models.Property{
		BcNumber:         r.BcNumber,
		Name:             r.Name,
		Address:          r.Address,
		Units:            r.Units,
		ManagerName:      r.ManagerName,
		ManagementFee:    r.ManagementFee,
		IsocNomDaysPrior: r.IsocNomDaysPrior,
		InsuranceBroker:  r.InsuranceBroker,
		HasBwof:          r.HasBwof,
		BwofConsultant:   r.BwofConsultant,
		HasLtmp:          r.HasLtmp,
	}

	if r.Type != nil {
		complexType := models.ComplexType(*r.Type)
		property.Type = &complexType
	}
	if r.OnboardingType != nil {
		onboarding := models.OnboardingType(*r.OnboardingType)
		property.OnboardingType = &onboarding
	}

	var err error
	if property.FinancialYearEnd, err = parseOptionalDate(r.FinancialYearEnd, "financialYearEnd"); err != nil {
		return nil, err
	}
	if property.InsuranceExpiry, err = parseOptionalDate(r.InsuranceExpiry, "insuranceExpiry"); err != nil {
		return nil, err
	}
	if property.BwofExpiry, err = parseOptionalDate(r.BwofExpiry, "bwofExpiry"); err != nil {
		return nil, err
	}
	if property.LtmpCompletedDate, err = parseOptionalDate(r.LtmpCompletedDate, "ltmpCompletedDate"); err != nil {
		return nil, err
	}
	if property.NextLtmpRenewalDate, err = parseOptionalDate(r.NextLtmpRenewalDate, "nextLtmpRenewalDate"); err != nil {
		return nil, err
	}

	return property, nil
}

// AssignManagerRequest names the user to assign as a property's manager.
type AssignManagerRequest struct {
	UserID int64 `json:"userId" binding:"required,min=1"`
}

// ArchiveResponse reports the archival state after a toggle.
type ArchiveResponse struct {
	ID         int64 `json:"id"`
	IsArchived bool  `json:"isArchived"`
}

// parseOptionalDate parses a nullable ISO date string.
func parseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := dates.Parse(*value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a valid ISO date (YYYY-MM-DD)", apperrors.ErrInvalidDate, field)
	}
	return &parsed, nil
}
