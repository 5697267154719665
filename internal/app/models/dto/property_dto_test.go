package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestPropertyRequestToModel(t *testing.T) {
	req := &PropertyRequest{
		BcNumber:        "BC 198211",
		Name:            "Harbourview Terraces",
		Units:           24,
		Type:            strPtr("Incorporated Society"),
		InsuranceExpiry: strPtr("2025-06-30"),
		HasBwof:         true,
		BwofExpiry:      strPtr("2025-03-15"),
	}

	property, err := req.ToModel()
	require.NoError(t, err)

	require.NotNil(t, property.Type)
	assert.Equal(t, models.ComplexTypeIncorporatedSociety, *property.Type)
	require.NotNil(t, property.InsuranceExpiry)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *property.InsuranceExpiry)
	require.NotNil(t, property.BwofExpiry)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *property.BwofExpiry)
}

func TestPropertyRequestToModel_OptionalDatesOmitted(t *testing.T) {
	req := &PropertyRequest{BcNumber: "BC 198211", Name: "Harbourview Terraces"}

	property, err := req.ToModel()
	require.NoError(t, err)
	assert.Nil(t, property.InsuranceExpiry)
	assert.Nil(t, property.BwofExpiry)
	assert.Nil(t, property.FinancialYearEnd)
	assert.Nil(t, property.Type)
}

func TestPropertyRequestToModel_MalformedDate(t *testing.T) {
	req := &PropertyRequest{
		BcNumber:        "BC 198211",
		Name:            "Harbourview Terraces",
		InsuranceExpiry: strPtr("30/06/2025"),
	}

	_, err := req.ToModel()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	assert.Contains(t, err.Error(), "insuranceExpiry")
}

func TestMeetingRequestToModel(t *testing.T) {
	req := &MeetingRequest{Type: "AGM", Date: "2025-03-01", Time: "18:30", Venue: "Community Hall"}

	meeting, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, models.MeetingTypeAGM, meeting.Type)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), meeting.Date)

	req.Date = "not-a-date"
	_, err = req.ToModel()
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
}
