package service

import (
	"strings"
	"time"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService back-office authentication.
// Sessions live server-side as database rows keyed by an opaque token; every
// authenticated request slides the expiry forward, it never moves back.
type AdminAuthService struct {
	cfg         *config.Config
	adminRepo   repository.AdminUserRepository
	sessionRepo repository.AdminSessionRepository
}

// NewAdminAuthService creates the admin auth service
func NewAdminAuthService(cfg *config.Config, adminRepo repository.AdminUserRepository, sessionRepo repository.AdminSessionRepository) *AdminAuthService {
	return &AdminAuthService{
		cfg:         cfg,
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
	}
}

// SignIn operator sign-in; issues a fresh session token
func (s *AdminAuthService) SignIn(email, password string) (*models.AdminUser, *models.AdminSession, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	admin, err := s.adminRepo.GetByEmail(normalized)
	if err != nil {
		return nil, nil, err
	}
	if admin == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, nil, ErrAccountDeactivated
	}

	now := time.Now()
	session := &models.AdminSession{
		Token:       uuid.NewString(),
		AdminUserID: admin.ID,
		ExpiresAt:   now.Add(s.cfg.Admin.SessionTTL()),
		LastSeenAt:  now,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, nil, err
	}

	admin.LastSignInAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, nil, err
	}
	session.AdminUser = admin
	return admin, session, nil
}

// GetSession validates a session token and slides its expiry.
// Expired sessions and sessions of deactivated operators are removed on sight.
func (s *AdminAuthService) GetSession(token string) (*models.AdminSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	now := time.Now()
	if !session.ExpiresAt.After(now) {
		_ = s.sessionRepo.DeleteByToken(token)
		return nil, ErrSessionExpired
	}
	if session.AdminUser == nil {
		_ = s.sessionRepo.DeleteByToken(token)
		return nil, ErrSessionNotFound
	}
	if !session.AdminUser.IsActive {
		_ = s.sessionRepo.DeleteByAdminUser(session.AdminUserID)
		return nil, ErrAccountDeactivated
	}

	newExpiry := now.Add(s.cfg.Admin.SessionTTL())
	if err := s.sessionRepo.Slide(token, newExpiry, now); err != nil {
		return nil, err
	}
	session.ExpiresAt = newExpiry
	session.LastSeenAt = now
	return session, nil
}

// Refresh slides a session's expiry forward.
// Same validation and slide as GetSession; exists so callers that only want
// to keep a session alive don't read the session payload.
func (s *AdminAuthService) Refresh(token string) (*models.AdminSession, error) {
	return s.GetSession(token)
}

// SignOut removes one session
func (s *AdminAuthService) SignOut(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(token)
}

// SignOutAll removes every session of an operator
func (s *AdminAuthService) SignOutAll(adminUserID uint) error {
	if adminUserID == 0 {
		return nil
	}
	return s.sessionRepo.DeleteByAdminUser(adminUserID)
}

// SweepExpiredSessions removes sessions past their expiry
func (s *AdminAuthService) SweepExpiredSessions(now time.Time) (int64, error) {
	return s.sessionRepo.DeleteExpired(now)
}

// HasPermission checks an operator's permission via the role table
func (s *AdminAuthService) HasPermission(admin *models.AdminUser, permission string) bool {
	if admin == nil || !admin.IsActive {
		return false
	}
	return RoleHasPermission(admin.Role, permission)
}

// ChangePassword operator password change; revokes other sessions
func (s *AdminAuthService) ChangePassword(adminUserID uint, oldPassword, newPassword, keepToken string) error {
	admin, err := s.adminRepo.GetByID(adminUserID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hashedPassword)
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}

	if err := s.sessionRepo.DeleteByAdminUser(admin.ID); err != nil {
		return err
	}
	if keep := strings.TrimSpace(keepToken); keep != "" {
		now := time.Now()
		session := &models.AdminSession{
			Token:       keep,
			AdminUserID: admin.ID,
			ExpiresAt:   now.Add(s.cfg.Admin.SessionTTL()),
			LastSeenAt:  now,
		}
		if err := s.sessionRepo.Create(session); err != nil {
			return err
		}
	}
	return nil
}
