package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.PendingSignup{}, &models.EmailVerifyCode{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret-key-that-is-long-enough", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
	// SMTP stays disabled; codes are persisted without sending
	svc := NewUserAuthService(
		cfg,
		repository.NewProfileRepository(db),
		repository.NewEmailVerifyCodeRepository(db),
		repository.NewPendingSignupRepository(db),
		NewEmailService(&cfg.Email),
		nil,
	)
	return svc, db
}

func latestSignupCode(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	var record models.EmailVerifyCode
	if err := db.Where("email = ? AND purpose = ?", email, "signup").
		Order("id desc").First(&record).Error; err != nil {
		t.Fatalf("load verify code failed: %v", err)
	}
	return record.Code
}

func TestSignUpAndVerifyFlow(t *testing.T) {
	svc, db := setupUserAuthTest(t)

	pending, err := svc.SignUp("new@smiley.example", "goodpass123", "New Customer")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if pending.Token == "" {
		t.Fatalf("pending signup token is empty")
	}

	// account exists but is unconfirmed
	var profile models.Profile
	if err := db.Where("email = ?", "new@smiley.example").First(&profile).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if profile.EmailConfirmedAt != nil {
		t.Fatalf("email must not be confirmed before OTP")
	}

	code := latestSignupCode(t, db, "new@smiley.example")
	confirmed, token, expiresAt, err := svc.VerifySignup(pending.Token, code)
	if err != nil {
		t.Fatalf("verify signup failed: %v", err)
	}
	if confirmed.EmailConfirmedAt == nil {
		t.Fatalf("email not confirmed after OTP")
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("no session token issued on verify")
	}

	// the pending token is single use
	if _, _, _, err := svc.VerifySignup(pending.Token, code); !errors.Is(err, ErrPendingSignupInvalid) {
		t.Fatalf("reused pending token want ErrPendingSignupInvalid got %v", err)
	}
}

func TestSignUpRejectsConfirmedEmail(t *testing.T) {
	svc, db := setupUserAuthTest(t)

	pending, err := svc.SignUp("taken@smiley.example", "goodpass123", "")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	code := latestSignupCode(t, db, "taken@smiley.example")
	if _, _, _, err := svc.VerifySignup(pending.Token, code); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if _, err := svc.SignUp("taken@smiley.example", "goodpass123", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
}

func TestSignUpValidatesInput(t *testing.T) {
	svc, _ := setupUserAuthTest(t)

	if _, err := svc.SignUp("not-an-email", "goodpass123", ""); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, err := svc.SignUp("ok@smiley.example", "short", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password want ErrWeakPassword got %v", err)
	}
}

func TestSignInUnconfirmedForcesNewPendingToken(t *testing.T) {
	svc, db := setupUserAuthTest(t)

	first, err := svc.SignUp("limbo@smiley.example", "goodpass123", "")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	var before models.Profile
	if err := db.Where("email = ?", "limbo@smiley.example").First(&before).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}

	result, err := svc.SignIn("limbo@smiley.example", "goodpass123")
	if !errors.Is(err, ErrEmailNotConfirmed) {
		t.Fatalf("want ErrEmailNotConfirmed got %v", err)
	}
	if result == nil || result.PendingSignupToken == "" {
		t.Fatalf("no pending token returned alongside ErrEmailNotConfirmed")
	}
	if result.Token != "" {
		t.Fatalf("unconfirmed sign-in must not issue a session token")
	}
	if result.PendingSignupToken == first.Token {
		t.Fatalf("pending token should be re-issued, not reused")
	}

	// outstanding tokens are revoked by bumping the version
	var after models.Profile
	if err := db.Where("email = ?", "limbo@smiley.example").First(&after).Error; err != nil {
		t.Fatalf("reload profile failed: %v", err)
	}
	if after.TokenVersion != before.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", before.TokenVersion+1, after.TokenVersion)
	}
	if after.TokenInvalidBefore == nil {
		t.Fatalf("token_invalid_before not set")
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc, _ := setupUserAuthTest(t)

	if _, err := svc.SignUp("who@smiley.example", "goodpass123", ""); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if _, err := svc.SignIn("who@smiley.example", "wrongpass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, err := svc.SignIn("ghost@smiley.example", "goodpass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc, _ := setupUserAuthTest(t)

	profile := &models.Profile{Email: "jwt@smiley.example", TokenVersion: 3}
	profile.ID = 7

	token, expiresAt, err := svc.GenerateJWT(profile)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token already expired")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.ProfileID != 7 || claims.Email != "jwt@smiley.example" || claims.TokenVersion != 3 {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, err := svc.ParseJWT("not-a-token"); err == nil {
		t.Fatalf("garbage token must not parse")
	}
}

func TestSignOutBumpsTokenVersion(t *testing.T) {
	svc, db := setupUserAuthTest(t)

	pending, err := svc.SignUp("out@smiley.example", "goodpass123", "")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	code := latestSignupCode(t, db, "out@smiley.example")
	profile, _, _, err := svc.VerifySignup(pending.Token, code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	before := profile.TokenVersion
	if err := svc.SignOut(profile.ID); err != nil {
		t.Fatalf("sign out failed: %v", err)
	}

	var after models.Profile
	if err := db.First(&after, profile.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if after.TokenVersion != before+1 {
		t.Fatalf("token version want %d got %d", before+1, after.TokenVersion)
	}
}

func TestSweepPendingSignups(t *testing.T) {
	svc, db := setupUserAuthTest(t)

	if _, err := svc.SignUp("sweep@smiley.example", "goodpass123", ""); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if err := db.Model(&models.PendingSignup{}).
		Where("1 = 1").Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("expire pending failed: %v", err)
	}

	swept, err := svc.SweepPendingSignups(time.Now())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept want 1 got %d", swept)
	}
}
