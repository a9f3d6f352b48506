package repository

import (
	"github.com/conftrack/paper-review-api/internal/models"
	"gorm.io/gorm"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByName finds a role by name
func (r *GormRoleRepository) FindByName(name models.RoleName) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindOrCreate returns the role with the given name, inserting it on first use
func (r *GormRoleRepository) FindOrCreate(name models.RoleName) (*models.Role, error) {
	role := models.Role{Name: name}
	if err := r.db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
