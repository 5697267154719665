package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
)

// ContractorStore persists the contractor directory.
type ContractorStore interface {
	Create(ctx context.Context, contractor *models.Contractor) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Contractor, error)
	GetAll(ctx context.Context) ([]*models.Contractor, error)
	Update(ctx context.Context, contractor *models.Contractor) error
	Delete(ctx context.Context, id int64) error
}

// ContractorService defines contractor directory operations.
type ContractorService interface {
	CreateContractor(ctx context.Context, contractor *models.Contractor) (int64, error)
	GetContractorByID(ctx context.Context, id int64) (*models.Contractor, error)
	GetAllContractors(ctx context.Context) ([]*models.Contractor, error)
	UpdateContractor(ctx context.Context, contractor *models.Contractor) error
	DeleteContractor(ctx context.Context, id int64) error
}

// contractorServiceImpl implements the ContractorService interface.
type contractorServiceImpl struct {
	contractors ContractorStore
}

// NewContractorService creates a new contractor service instance.
func NewContractorService(contractors ContractorStore) ContractorService {
	return &contractorServiceImpl{contractors: contractors}
}

// validateContractor validates contractor data before persistence.
func (s *contractorServiceImpl) validateContractor(contractor *models.Contractor) error {
	if contractor == nil {
		return fmt.Errorf("%w: contractor is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(contractor.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	switch contractor.Category {
	case models.ContractorInsuranceBroker, models.ContractorInsuranceValuer,
		models.ContractorConsultant, models.ContractorGeneral, models.ContractorCompliance:
	default:
		return fmt.Errorf("%w: unknown contractor category %q", apperrors.ErrValidationFailed, contractor.Category)
	}
	return nil
}

// CreateContractor creates a new contractor.
func (s *contractorServiceImpl) CreateContractor(ctx context.Context, contractor *models.Contractor) (int64, error) {
	if err := s.validateContractor(contractor); err != nil {
		return 0, err
	}
	id, err := s.contractors.Create(ctx, contractor)
	if err != nil {
		return 0, fmt.Errorf("error creating contractor: %w", err)
	}
	return id, nil
}

// GetContractorByID retrieves a contractor by ID.
func (s *contractorServiceImpl) GetContractorByID(ctx context.Context, id int64) (*models.Contractor, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid contractor ID", apperrors.ErrValidationFailed)
	}
	contractor, err := s.contractors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrContractorNotFound) {
			return nil, apperrors.ErrContractorNotFound
		}
		return nil, fmt.Errorf("error retrieving contractor: %w", err)
	}
	return contractor, nil
}

// GetAllContractors retrieves all contractors.
func (s *contractorServiceImpl) GetAllContractors(ctx context.Context) ([]*models.Contractor, error) {
	contractors, err := s.contractors.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving contractors: %w", err)
	}
	return contractors, nil
}

// UpdateContractor updates an existing contractor.
func (s *contractorServiceImpl) UpdateContractor(ctx context.Context, contractor *models.Contractor) error {
	if err := s.validateContractor(contractor); err != nil {
		return err
	}
	if contractor.ID <= 0 {
		return fmt.Errorf("%w: invalid contractor ID", apperrors.ErrValidationFailed)
	}
	if err := s.contractors.Update(ctx, contractor); err != nil {
		if errors.Is(err, apperrors.ErrContractorNotFound) {
			return apperrors.ErrContractorNotFound
		}
		return fmt.Errorf("error updating contractor: %w", err)
	}
	return nil
}

// DeleteContractor removes a contractor from the directory. Contractors are
// referenced from properties by name only, so deletion needs no relation check.
func (s *contractorServiceImpl) DeleteContractor(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid contractor ID", apperrors.ErrValidationFailed)
	}
	if err := s.contractors.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrContractorNotFound) {
			return apperrors.ErrContractorNotFound
		}
		return fmt.Errorf("error deleting contractor: %w", err)
	}
	return nil
}
