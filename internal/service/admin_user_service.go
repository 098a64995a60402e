package service

import (
	"strings"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminUserService operator account management.
// Only super admins reach these operations; the route guard enforces that.
type AdminUserService struct {
	cfg         *config.Config
	adminRepo   repository.AdminUserRepository
	sessionRepo repository.AdminSessionRepository
}

// NewAdminUserService creates the operator management service
func NewAdminUserService(cfg *config.Config, adminRepo repository.AdminUserRepository, sessionRepo repository.AdminSessionRepository) *AdminUserService {
	return &AdminUserService{
		cfg:         cfg,
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
	}
}

// AdminUserInput create/update payload
type AdminUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// List operator list
func (s *AdminUserService) List(filter repository.AdminUserListFilter) ([]models.AdminUser, int64, error) {
	return s.adminRepo.List(filter)
}

// GetByID operator lookup
func (s *AdminUserService) GetByID(id uint) (*models.AdminUser, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

// Create creates an operator account
func (s *AdminUserService) Create(input AdminUserInput) (*models.AdminUser, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if !IsValidAdminRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	existing, err := s.adminRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.AdminUser{
		Email:        normalized,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		IsActive:     input.IsActive,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Update saves an operator account.
// Deactivating or demoting drops the operator's sessions immediately.
func (s *AdminUserService) Update(id uint, input AdminUserInput) (*models.AdminUser, error) {
	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !IsValidAdminRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if admin.Role == constants.AdminRoleSuperAdmin &&
		(input.Role != constants.AdminRoleSuperAdmin || !input.IsActive) {
		last, err := s.isLastActiveSuperAdmin(admin.ID)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, ErrLastSuperAdmin
		}
	}

	dropSessions := admin.IsActive && !input.IsActive || admin.Role != input.Role

	if email := strings.TrimSpace(input.Email); email != "" && !strings.EqualFold(email, admin.Email) {
		normalized, err := normalizeEmail(email)
		if err != nil {
			return nil, err
		}
		existing, err := s.adminRepo.GetByEmail(normalized)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != admin.ID {
			return nil, ErrEmailExists
		}
		admin.Email = normalized
	}
	if input.Password != "" {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
			return nil, err
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = string(hashedPassword)
		dropSessions = true
	}
	admin.Name = strings.TrimSpace(input.Name)
	admin.Role = input.Role
	admin.IsActive = input.IsActive
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}

	if dropSessions {
		if err := s.sessionRepo.DeleteByAdminUser(admin.ID); err != nil {
			return nil, err
		}
	}
	return admin, nil
}

// Delete removes an operator account and its sessions
func (s *AdminUserService) Delete(id uint) error {
	admin, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if admin.Role == constants.AdminRoleSuperAdmin {
		last, err := s.isLastActiveSuperAdmin(admin.ID)
		if err != nil {
			return err
		}
		if last {
			return ErrLastSuperAdmin
		}
	}
	if err := s.sessionRepo.DeleteByAdminUser(id); err != nil {
		return err
	}
	return s.adminRepo.Delete(id)
}

func (s *AdminUserService) isLastActiveSuperAdmin(excludeID uint) (bool, error) {
	admins, _, err := s.adminRepo.List(repository.AdminUserListFilter{Role: constants.AdminRoleSuperAdmin})
	if err != nil {
		return false, err
	}
	for _, a := range admins {
		if a.ID != excludeID && a.IsActive {
			return false, nil
		}
	}
	return true, nil
}
