package repository

import (
	"errors"
	"time"

	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// AdminSessionRepository admin session data access
type AdminSessionRepository interface {
	Create(session *models.AdminSession) error
	GetByToken(token string) (*models.AdminSession, error)
	Slide(token string, expiresAt, lastSeenAt time.Time) error
	DeleteByToken(token string) error
	DeleteByAdminUser(adminUserID uint) error
	DeleteExpired(now time.Time) (int64, error)
}

// GormAdminSessionRepository GORM implementation
type GormAdminSessionRepository struct {
	db *gorm.DB
}

// NewAdminSessionRepository creates the session repository
func NewAdminSessionRepository(db *gorm.DB) *GormAdminSessionRepository {
	return &GormAdminSessionRepository{db: db}
}

// Create creates a session row
func (r *GormAdminSessionRepository) Create(session *models.AdminSession) error {
	return r.db.Create(session).Error
}

// GetByToken loads a session with its operator
func (r *GormAdminSessionRepository) GetByToken(token string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := r.db.Preload("AdminUser").Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Slide advances the expiry; never shortens it.
func (r *GormAdminSessionRepository) Slide(token string, expiresAt, lastSeenAt time.Time) error {
	return r.db.Model(&models.AdminSession{}).
		Where("token = ? AND expires_at < ?", token, expiresAt).
		Updates(map[string]interface{}{
			"expires_at":   expiresAt,
			"last_seen_at": lastSeenAt,
		}).Error
}

// DeleteByToken removes a session
func (r *GormAdminSessionRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.AdminSession{}).Error
}

// DeleteByAdminUser removes all sessions of an operator
func (r *GormAdminSessionRepository) DeleteByAdminUser(adminUserID uint) error {
	return r.db.Where("admin_user_id = ?", adminUserID).Delete(&models.AdminSession{}).Error
}

// DeleteExpired removes sessions past their expiry
func (r *GormAdminSessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}
