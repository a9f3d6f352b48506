package repository

import (
	"github.com/conftrack/paper-review-api/internal/models"
	"gorm.io/gorm"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// FindOrCreateByName returns the tag with the exact name, inserting it if absent
func (r *GormTagRepository) FindOrCreateByName(name string) (*models.Tag, error) {
	tag := models.Tag{Name: name}
	if err := r.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
