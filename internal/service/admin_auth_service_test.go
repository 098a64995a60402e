package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAdminAuthTest(t *testing.T) (*AdminAuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}, &models.AdminSession{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{
		Admin: config.AdminConfig{SessionTTLHours: 24},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
	svc := NewAdminAuthService(cfg, repository.NewAdminUserRepository(db), repository.NewAdminSessionRepository(db))
	return svc, db
}

func createTestAdmin(t *testing.T, db *gorm.DB, email, password, role string, active bool) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestAdminSignInIssuesSession(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	admin, session, err := svc.SignIn("Ops@Smiley.example", "hunter2pass1")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("session token is empty")
	}
	if !session.ExpiresAt.After(time.Now().Add(23 * time.Hour)) {
		t.Fatalf("session expiry too short: %v", session.ExpiresAt)
	}
	if admin.LastSignInAt == nil {
		t.Fatalf("last sign-in not recorded")
	}
}

func TestAdminSignInRejectsBadCredentials(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	if _, _, err := svc.SignIn("ops@smiley.example", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, err := svc.SignIn("nobody@smiley.example", "hunter2pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestAdminSignInRejectsDeactivatedAccount(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	createTestAdmin(t, db, "gone@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, false)

	if _, _, err := svc.SignIn("gone@smiley.example", "hunter2pass1"); !errors.Is(err, ErrAccountDeactivated) {
		t.Fatalf("want ErrAccountDeactivated got %v", err)
	}
}

func TestAdminGetSessionSlidesExpiryForward(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	_, session, err := svc.SignIn("ops@smiley.example", "hunter2pass1")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}

	// shorten the stored expiry so the slide is observable
	earlier := time.Now().Add(time.Hour)
	if err := db.Model(&models.AdminSession{}).Where("token = ?", session.Token).
		Update("expires_at", earlier).Error; err != nil {
		t.Fatalf("shorten expiry failed: %v", err)
	}

	refreshed, err := svc.GetSession(session.Token)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if !refreshed.ExpiresAt.After(earlier) {
		t.Fatalf("expiry did not slide forward: %v", refreshed.ExpiresAt)
	}

	var stored models.AdminSession
	if err := db.Where("token = ?", session.Token).First(&stored).Error; err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	if !stored.ExpiresAt.After(earlier) {
		t.Fatalf("stored expiry did not slide: %v", stored.ExpiresAt)
	}
}

func TestAdminRefreshSlidesExpiryForward(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	_, session, err := svc.SignIn("ops@smiley.example", "hunter2pass1")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}

	earlier := time.Now().Add(time.Hour)
	if err := db.Model(&models.AdminSession{}).Where("token = ?", session.Token).
		Update("expires_at", earlier).Error; err != nil {
		t.Fatalf("shorten expiry failed: %v", err)
	}

	refreshed, err := svc.Refresh(session.Token)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !refreshed.ExpiresAt.After(earlier) {
		t.Fatalf("expiry did not slide forward: %v", refreshed.ExpiresAt)
	}

	if _, err := svc.Refresh("no-such-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("unknown token want ErrSessionNotFound got %v", err)
	}
}

func TestAdminGetSessionRejectsExpired(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	admin := createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	expired := &models.AdminSession{
		Token:       "expired-token",
		AdminUserID: admin.ID,
		ExpiresAt:   time.Now().Add(-time.Minute),
		LastSeenAt:  time.Now().Add(-time.Hour),
	}
	if err := db.Create(expired).Error; err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	if _, err := svc.GetSession("expired-token"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired got %v", err)
	}

	var count int64
	if err := db.Model(&models.AdminSession{}).Where("token = ?", "expired-token").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expired session row not removed")
	}
}

func TestAdminGetSessionRejectsDeactivatedOperator(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	admin := createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	_, session, err := svc.SignIn("ops@smiley.example", "hunter2pass1")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if err := db.Model(&models.AdminUser{}).Where("id = ?", admin.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := svc.GetSession(session.Token); !errors.Is(err, ErrAccountDeactivated) {
		t.Fatalf("want ErrAccountDeactivated got %v", err)
	}

	var count int64
	if err := db.Model(&models.AdminSession{}).Where("admin_user_id = ?", admin.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("deactivated operator sessions not removed")
	}
}

func TestAdminGetSessionUnknownToken(t *testing.T) {
	svc, _ := setupAdminAuthTest(t)
	if _, err := svc.GetSession("no-such-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound got %v", err)
	}
	if _, err := svc.GetSession(""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("empty token want ErrSessionNotFound got %v", err)
	}
}

func TestAdminChangePasswordRevokesOtherSessions(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	admin := createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	_, current, err := svc.SignIn("ops@smiley.example", "hunter2pass1")
	if err != nil {
		t.Fatalf("first sign in failed: %v", err)
	}
	_, other, err := svc.SignIn("ops@smiley.example", "hunter2pass1")
	if err != nil {
		t.Fatalf("second sign in failed: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "hunter2pass1", "newsecret99", current.Token); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := svc.GetSession(current.Token); err != nil {
		t.Fatalf("current session should survive: %v", err)
	}
	if _, err := svc.GetSession(other.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("other session should be revoked, got %v", err)
	}

	if _, _, err := svc.SignIn("ops@smiley.example", "newsecret99"); err != nil {
		t.Fatalf("sign in with new password failed: %v", err)
	}
}

func TestAdminChangePasswordValidation(t *testing.T) {
	svc, db := setupAdminAuthTest(t)
	admin := createTestAdmin(t, db, "ops@smiley.example", "hunter2pass1", constants.AdminRoleAdmin, true)

	if err := svc.ChangePassword(admin.ID, "wrong", "newsecret99", ""); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "hunter2pass1", "short", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak new password want ErrWeakPassword got %v", err)
	}
}
