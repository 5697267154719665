package models

import (
	"strings"
	"time"
)

// ComplexType is the legal classification of a managed property.
type ComplexType string

const (
	ComplexTypeBodyCorporate       ComplexType = "Body Corporate"
	ComplexTypeIncorporatedSociety ComplexType = "Incorporated Society"
)

// OnboardingType describes how a property entered the portfolio.
type OnboardingType string

const (
	OnboardingNewDevelopment OnboardingType = "New Development"
	OnboardingTakeover       OnboardingType = "Takeover"
)

// DefaultIsocNomDays is the statutory default notice-of-motion period for
// Incorporated Societies when no per-property override is configured.
const DefaultIsocNomDays = 7

// BodyCorporateNomDays is the fixed notice-of-motion period for Body Corporates.
const BodyCorporateNomDays = 15

// Property represents a managed complex (Body Corporate or Incorporated Society)
// and is the aggregate root for its meetings.
type Property struct {
	ID       int64  `json:"id" db:"id"`
	BcNumber string `json:"bcNumber" db:"bc_number"`
	Name     string `json:"name" db:"name"`
	Address  string `json:"address" db:"address"`
	Units    int    `json:"units" db:"units"`

	// Type is the explicit legal classification. Legacy rows predate this
	// column and are classified from the BcNumber prefix instead, see
	// IsIncorporatedSociety.
	Type           *ComplexType    `json:"type,omitempty" db:"type"`
	ManagerName    string          `json:"managerName" db:"manager_name"`
	ManagementFee  float64         `json:"managementFee" db:"management_fee"`
	OnboardingType *OnboardingType `json:"onboardingType,omitempty" db:"onboarding_type"`
	IsArchived     bool            `json:"isArchived" db:"is_archived"`

	FinancialYearEnd *time.Time `json:"financialYearEnd,omitempty" db:"financial_year_end"`

	// IsocNomDaysPrior overrides the notice-of-motion period for
	// Incorporated Societies. Nil means the statutory default of 7 days.
	IsocNomDaysPrior *int `json:"isocNomDaysPrior,omitempty" db:"isoc_nom_days_prior"`

	// Insurance
	InsuranceExpiry *time.Time `json:"insuranceExpiry,omitempty" db:"insurance_expiry"`
	InsuranceBroker string     `json:"insuranceBroker,omitempty" db:"insurance_broker"`

	// Compliance (Building Warrant of Fitness)
	HasBwof        bool       `json:"hasBwof" db:"has_bwof"`
	BwofExpiry     *time.Time `json:"bwofExpiry,omitempty" db:"bwof_expiry"`
	BwofConsultant string     `json:"bwofConsultant,omitempty" db:"bwof_consultant"`

	// Maintenance (Long Term Maintenance Plan). Tracked for reporting only;
	// the reminder engine does not derive deadlines from these fields.
	HasLtmp             bool       `json:"hasLtmp" db:"has_ltmp"`
	LtmpCompletedDate   *time.Time `json:"ltmpCompletedDate,omitempty" db:"ltmp_completed_date"`
	NextLtmpRenewalDate *time.Time `json:"nextLtmpRenewalDate,omitempty" db:"next_ltmp_renewal_date"`

	// Next-AGM convenience fields, denormalized from the latest future AGM/SGM
	// so dashboards can read them without scanning meetings. The reminder
	// engine always recomputes from the Meetings list instead.
	NextAgmDate         *time.Time `json:"nextAgmDate,omitempty" db:"next_agm_date"`
	NextAgmTime         string     `json:"nextAgmTime,omitempty" db:"next_agm_time"`
	NextAgmVenue        string     `json:"nextAgmVenue,omitempty" db:"next_agm_venue"`
	NextAgmVenueAddress string     `json:"nextAgmVenueAddress,omitempty" db:"next_agm_venue_address"`
	NoiDueDate          *time.Time `json:"noiDueDate,omitempty" db:"noi_due_date"`
	NoiResponseDueDate  *time.Time `json:"noiResponseDueDate,omitempty" db:"noi_response_due_date"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Meetings []*Meeting `json:"meetings"`
}

// NextAgmDetails is the denormalized next-AGM snapshot written onto a
// property when a future AGM or SGM is added or updated.
type NextAgmDetails struct {
	Date               time.Time
	Time               string
	Venue              string
	VenueAddress       string
	NoiDueDate         *time.Time
	NoiResponseDueDate *time.Time
}

// IsIncorporatedSociety reports the effective classification. Older records
// never had the explicit Type populated and rely on the "IS" prefix of their
// registration number, so both checks must be kept.
func (p *Property) IsIncorporatedSociety() bool {
	if p.Type != nil && *p.Type == ComplexTypeIncorporatedSociety {
		return true
	}
	return strings.HasPrefix(p.BcNumber, "IS")
}

// NomNoticeDays returns how many days before a meeting the notice of
// motion/agenda is due for this property.
func (p *Property) NomNoticeDays() int {
	if p.IsIncorporatedSociety() {
		if p.IsocNomDaysPrior != nil {
			return *p.IsocNomDaysPrior
		}
		return DefaultIsocNomDays
	}
	return BodyCorporateNomDays
}
