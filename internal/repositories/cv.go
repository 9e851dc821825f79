package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/cv-ranker/internal/models"
)

type CVRepository interface {
	Create(cv *models.CVRecord) error
	FindAll() ([]models.CVRecord, error)
	FindByOriginalFilename(name string) (*models.CVRecord, error)
	DeleteAll() (int64, error)
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository.
func (r *cvRepository) Create(cv *models.CVRecord) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv record: %w", err)
	}
	return nil
}

// FindAll implements CVRepository.
func (r *cvRepository) FindAll() ([]models.CVRecord, error) {
	var cvs []models.CVRecord
	if err := r.db.Order("created_at ASC").Find(&cvs).Error; err != nil {
		return nil, fmt.Errorf("failed to find cv records: %w", err)
	}
	return cvs, nil
}

// FindByOriginalFilename implements CVRepository.
func (r *cvRepository) FindByOriginalFilename(name string) (*models.CVRecord, error) {
	var cv models.CVRecord
	if err := r.db.Where("original_filename = ?", name).First(&cv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cv %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find cv record: %w", err)
	}
	return &cv, nil
}

// DeleteAll implements CVRepository.
func (r *cvRepository) DeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CVRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete cv records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
