package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/cv-ranker/internal/models"
)

type JobDescriptionRepository interface {
	Create(jd *models.JobDescription) error
	FindLatest() (*models.JobDescription, error)
	FindByDescription(description string) (*models.JobDescription, error)
	List(offset, limit int) ([]models.JobDescription, error)
	Count() (int64, error)
}

type jobDescriptionRepository struct {
	db *gorm.DB
}

func NewJobDescriptionRepository(db *gorm.DB) JobDescriptionRepository {
	return &jobDescriptionRepository{db: db}
}

func (r *jobDescriptionRepository) Create(jd *models.JobDescription) error {
	if err := r.db.Create(jd).Error; err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

// FindLatest returns the job description with the most recent created_at.
func (r *jobDescriptionRepository) FindLatest() (*models.JobDescription, error) {
	var jd models.JobDescription
	if err := r.db.Order("created_at DESC").First(&jd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("latest job description: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find latest job description: %w", err)
	}
	return &jd, nil
}

func (r *jobDescriptionRepository) FindByDescription(description string) (*models.JobDescription, error) {
	var jd models.JobDescription
	if err := r.db.Where("description = ?", description).First(&jd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job description: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &jd, nil
}

func (r *jobDescriptionRepository) List(offset, limit int) ([]models.JobDescription, error) {
	var jds []models.JobDescription
	err := r.db.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jds).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}

	return jds, nil
}

func (r *jobDescriptionRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.JobDescription{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count job descriptions: %w", err)
	}
	return total, nil
}
