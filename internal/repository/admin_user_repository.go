package repository

import (
	"errors"

	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// AdminUserRepository operator account data access
type AdminUserRepository interface {
	GetByEmail(email string) (*models.AdminUser, error)
	GetByID(id uint) (*models.AdminUser, error)
	Create(admin *models.AdminUser) error
	Update(admin *models.AdminUser) error
	List(filter AdminUserListFilter) ([]models.AdminUser, int64, error)
	Delete(id uint) error
}

// GormAdminUserRepository GORM implementation
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository creates the operator repository
func NewAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// GetByEmail looks an operator up by email
func (r *GormAdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID looks an operator up by id
func (r *GormAdminUserRepository) GetByID(id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// Create creates an operator
func (r *GormAdminUserRepository) Create(admin *models.AdminUser) error {
	return r.db.Create(admin).Error
}

// Update saves an operator
func (r *GormAdminUserRepository) Update(admin *models.AdminUser) error {
	return r.db.Save(admin).Error
}

// List operator list
func (r *GormAdminUserRepository) List(filter AdminUserListFilter) ([]models.AdminUser, int64, error) {
	query := r.db.Model(&models.AdminUser{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var admins []models.AdminUser
	if err := query.Order("id ASC").Find(&admins).Error; err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

// Delete soft-deletes an operator
func (r *GormAdminUserRepository) Delete(id uint) error {
	return r.db.Delete(&models.AdminUser{}, id).Error
}
