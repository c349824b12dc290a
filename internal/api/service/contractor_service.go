package service

import (
	"errors"

	"sitetrack"
	"sitetrack/internal/api/models"
	"sitetrack/internal/api/repo"
	"sitetrack/internal/rates"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrContractorNotFound = errors.New("contractor not found")

type ContractorService struct {
	contractorRepo *repo.ContractorRepository
	rateTable      rates.Table
	logger         zerolog.Logger
}

func NewContractorService(rateTable rates.Table) *ContractorService {
	return &ContractorService{
		contractorRepo: repo.NewContractorRepository(),
		rateTable:      rateTable,
		logger:         sitetrack.Logger,
	}
}

func (slf *ContractorService) FindAll() ([]models.Contractor, error) {
	contractors, err := slf.contractorRepo.FindAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error getting contractors")
		return nil, err
	}
	return contractors, nil
}

func (slf *ContractorService) FindByID(id uint) (*models.Contractor, error) {
	contractor, err := slf.contractorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractorNotFound
		}
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Error getting contractor")
		return nil, err
	}
	return &contractor, nil
}

func (slf *ContractorService) Create(contractor models.Contractor) (*models.Contractor, error) {
	if err := slf.contractorRepo.Create(&contractor); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating contractor")
		return nil, err
	}
	return &contractor, nil
}

func (slf *ContractorService) Update(id uint, patch map[string]any) (*models.Contractor, error) {
	if err := slf.contractorRepo.Update(id, patch); err != nil {
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Error updating contractor")
		return nil, err
	}
	return slf.FindByID(id)
}

func (slf *ContractorService) Delete(id uint) error {
	if err := slf.contractorRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Error deleting contractor")
		return err
	}
	return nil
}

// DayRateFor looks up the agency day rate for a contractor's trade.
// Unknown trades report not-found; the UI falls back to manual entry.
func (slf *ContractorService) DayRateFor(id uint) (int, bool, error) {
	contractor, err := slf.FindByID(id)
	if err != nil {
		return 0, false, err
	}
	rate, ok := slf.rateTable.DailyRate(contractor.Trade)
	return rate, ok, nil
}
