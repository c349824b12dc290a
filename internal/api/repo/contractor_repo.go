package repo

import (
	"sitetrack"
	"sitetrack/internal/api/models"

	"gorm.io/gorm"
)

type ContractorRepository struct {
	Db *gorm.DB
}

func NewContractorRepository() *ContractorRepository {
	return &ContractorRepository{Db: sitetrack.DB}
}

func (slf *ContractorRepository) FindByID(id uint) (models.Contractor, error) {
	var contractor models.Contractor
	err := slf.Db.First(&contractor, id).Error
	return contractor, err
}

func (slf *ContractorRepository) FindByIDs(ids []uint) ([]models.Contractor, error) {
	var contractors []models.Contractor
	err := slf.Db.Where("id IN ?", ids).Find(&contractors).Error
	return contractors, err
}

func (slf *ContractorRepository) FindAll() ([]models.Contractor, error) {
	var contractors []models.Contractor
	err := slf.Db.Order("name").Find(&contractors).Error
	return contractors, err
}

func (slf *ContractorRepository) Create(contractor *models.Contractor) error {
	return slf.Db.Create(contractor).Error
}

func (slf *ContractorRepository) Update(id uint, patch map[string]any) error {
	return slf.Db.Model(&models.Contractor{}).Where("id = ?", id).Updates(patch).Error
}

func (slf *ContractorRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.Contractor{}, id).Error
}
