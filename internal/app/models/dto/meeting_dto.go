package dto

import (
	"fmt"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
	"github.com/prop101/strataops/internal/pkg/dates"
)

// MeetingRequest carries meeting create/update payloads.
type MeetingRequest struct {
	Type         string `json:"type" binding:"required,oneof=AGM EGM SGM Committee"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time"`
	Venue        string `json:"venue"`
	VenueAddress string `json:"venueAddress"`

	NoiIssued     bool `json:"noiIssued"`
	NomIssued     bool `json:"nomIssued"`
	MinutesIssued bool `json:"minutesIssued"`
}

// ToModel converts the request into a domain meeting.
func (r *MeetingRequest) ToModel() (*models.Meeting, error) {
	date, err := dates.Parse(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a valid ISO date (YYYY-MM-DD)", apperrors.ErrInvalidDate)
	}

	return &models.Meeting{
		Type:          models.MeetingType(r.Type),
		Date:          date,
		Time:          r.Time,
		Venue:         r.Venue,
		VenueAddr:     r.VenueAddress,
		NoiIssued:     r.NoiIssued,
		NomIssued:     r.NomIssued,
		MinutesIssued: r.MinutesIssued,
	}, nil
}
