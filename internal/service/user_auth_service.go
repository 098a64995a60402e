package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/smiley-shop/smiley/internal/cache"
	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/queue"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService customer authentication.
// Signup is a two-step flow: the account row is created unconfirmed and the
// caller gets an opaque pending-signup token; only the email OTP converts it
// into a signed-in session. The cleartext password never leaves this service.
type UserAuthService struct {
	cfg          *config.Config
	profileRepo  repository.ProfileRepository
	codeRepo     repository.EmailVerifyCodeRepository
	pendingRepo  repository.PendingSignupRepository
	emailService *EmailService
	queueClient  *queue.Client
}

// NewUserAuthService creates the customer auth service
func NewUserAuthService(
	cfg *config.Config,
	profileRepo repository.ProfileRepository,
	codeRepo repository.EmailVerifyCodeRepository,
	pendingRepo repository.PendingSignupRepository,
	emailService *EmailService,
	queueClient *queue.Client,
) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		profileRepo:  profileRepo,
		codeRepo:     codeRepo,
		pendingRepo:  pendingRepo,
		emailService: emailService,
		queueClient:  queueClient,
	}
}

// ProfileJWTClaims customer token claims
type ProfileJWTClaims struct {
	ProfileID    uint   `json:"profile_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// SignInResult sign-in outcome.
// PendingSignupToken is set instead of a session token when the email is
// still unconfirmed and the confirmation flow was restarted.
type SignInResult struct {
	Profile            *models.Profile
	Token              string
	ExpiresAt          time.Time
	PendingSignupToken string
}

// GenerateJWT issues a customer token
func (s *UserAuthService) GenerateJWT(profile *models.Profile) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := ProfileJWTClaims{
		ProfileID:    profile.ID,
		Email:        profile.Email,
		TokenVersion: profile.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates a customer token
func (s *UserAuthService) ParseJWT(tokenString string) (*ProfileJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &ProfileJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*ProfileJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// SignUp creates an unconfirmed account and starts the OTP flow.
// Signing up again with an unconfirmed email restarts the flow in place.
func (s *UserAuthService) SignUp(email, password, name string) (*models.PendingSignup, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if profile.EmailConfirmedAt != nil {
			return nil, ErrEmailExists
		}
		profile.PasswordHash = string(hashedPassword)
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			profile.Name = trimmed
		}
		if err := s.profileRepo.Update(profile); err != nil {
			return nil, err
		}
	} else {
		profile = &models.Profile{
			Email:        normalized,
			PasswordHash: string(hashedPassword),
			Name:         strings.TrimSpace(name),
		}
		if err := s.profileRepo.Create(profile); err != nil {
			return nil, err
		}
	}

	pending := &models.PendingSignup{
		Token:     uuid.NewString(),
		ProfileID: profile.ID,
		ExpiresAt: now.Add(s.pendingSignupTTL()),
		CreatedAt: now,
	}
	if err := s.pendingRepo.Create(pending); err != nil {
		return nil, err
	}

	if err := s.sendVerifyCode(normalized, constants.VerifyPurposeSignup); err != nil {
		return nil, err
	}
	return pending, nil
}

// ResendSignupCode re-sends the OTP for a pending signup
func (s *UserAuthService) ResendSignupCode(pendingToken string) error {
	pending, profile, err := s.resolvePending(pendingToken)
	if err != nil {
		return err
	}
	_ = pending
	return s.sendVerifyCode(profile.Email, constants.VerifyPurposeSignup)
}

// VerifySignup confirms the email with the OTP and signs the customer in
func (s *UserAuthService) VerifySignup(pendingToken, code string) (*models.Profile, string, time.Time, error) {
	pending, profile, err := s.resolvePending(pendingToken)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if _, err := s.verifyCode(profile.Email, constants.VerifyPurposeSignup, code); err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	profile.EmailConfirmedAt = &now
	profile.LastSignInAt = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.pendingRepo.DeleteByToken(pending.Token); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateJWT(profile)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetProfileAuthState(context.Background(), cache.BuildProfileAuthState(profile))

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueWelcomeEmail(queue.WelcomeEmailPayload{Email: profile.Email, Name: profile.Name}); err != nil {
			logger.Warnw("welcome_email_enqueue_failed", "profile_id", profile.ID, "error", err)
		}
	}

	return profile, token, expiresAt, nil
}

// SignIn customer sign-in.
// An unconfirmed email is never allowed through: outstanding tokens are
// revoked and the confirmation flow is restarted with a fresh pending token.
func (s *UserAuthService) SignIn(email, password string) (*SignInResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if profile.EmailConfirmedAt == nil {
		pending, err := s.forceSignOutUnconfirmed(profile)
		if err != nil {
			return nil, err
		}
		return &SignInResult{Profile: profile, PendingSignupToken: pending.Token}, ErrEmailNotConfirmed
	}

	token, expiresAt, err := s.GenerateJWT(profile)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile.LastSignInAt = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	_ = cache.SetProfileAuthState(context.Background(), cache.BuildProfileAuthState(profile))

	return &SignInResult{Profile: profile, Token: token, ExpiresAt: expiresAt}, nil
}

// SignOut revokes every outstanding token for a customer
func (s *UserAuthService) SignOut(profileID uint) error {
	if profileID == 0 {
		return ErrNotFound
	}
	profile, err := s.profileRepo.GetByID(profileID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}
	now := time.Now()
	profile.TokenVersion++
	profile.TokenInvalidBefore = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return err
	}
	_ = cache.SetProfileAuthState(context.Background(), cache.BuildProfileAuthState(profile))
	return nil
}

// GetSessionProfile resolves the signed-in profile during page bootstrap.
// The lookup is bounded so a slow database cannot hang the first paint.
func (s *UserAuthService) GetSessionProfile(ctx context.Context, profileID uint) (*models.Profile, error) {
	if profileID == 0 {
		return nil, ErrNotFound
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Auth.BootstrapTimeout())
	defer cancel()

	type lookup struct {
		profile *models.Profile
		err     error
	}
	done := make(chan lookup, 1)
	go func() {
		profile, err := s.profileRepo.GetByID(profileID)
		done <- lookup{profile: profile, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ErrBootstrapTimeout
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if res.profile == nil {
			return nil, ErrNotFound
		}
		return res.profile, nil
	}
}

// SendVerifyCode requests an OTP by email address; only the password-reset
// purpose is reachable this way, signup codes go through the pending token.
func (s *UserAuthService) SendVerifyCode(email, purpose string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(purpose)) != constants.VerifyPurposeReset {
		return ErrInvalidVerifyPurpose
	}
	profile, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}
	return s.sendVerifyCode(normalized, constants.VerifyPurposeReset)
}

// ResetPassword sets a new password after OTP verification
func (s *UserAuthService) ResetPassword(email, code, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	profile, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}

	if _, err := s.verifyCode(normalized, constants.VerifyPurposeReset, code); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	profile.PasswordHash = string(hashedPassword)
	profile.TokenVersion++
	profile.TokenInvalidBefore = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return err
	}
	_ = cache.SetProfileAuthState(context.Background(), cache.BuildProfileAuthState(profile))
	return nil
}

// ChangePassword signed-in password change; revokes other sessions
func (s *UserAuthService) ChangePassword(profileID uint, oldPassword, newPassword string) error {
	if profileID == 0 {
		return ErrNotFound
	}
	profile, err := s.profileRepo.GetByID(profileID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	profile.PasswordHash = string(hashedPassword)
	profile.TokenVersion++
	profile.TokenInvalidBefore = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return err
	}
	_ = cache.SetProfileAuthState(context.Background(), cache.BuildProfileAuthState(profile))
	return nil
}

// GetProfileByID profile lookup
func (s *UserAuthService) GetProfileByID(id uint) (*models.Profile, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.profileRepo.GetByID(id)
}

// SweepPendingSignups drops expired pending-signup tokens
func (s *UserAuthService) SweepPendingSignups(now time.Time) (int64, error) {
	return s.pendingRepo.DeleteExpired(now)
}

func (s *UserAuthService) forceSignOutUnconfirmed(profile *models.Profile) (*models.PendingSignup, error) {
	now := time.Now()
	profile.TokenVersion++
	profile.TokenInvalidBefore = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	_ = cache.DelProfileAuthState(context.Background(), profile.ID)

	pending := &models.PendingSignup{
		Token:     uuid.NewString(),
		ProfileID: profile.ID,
		ExpiresAt: now.Add(s.pendingSignupTTL()),
		CreatedAt: now,
	}
	if err := s.pendingRepo.Create(pending); err != nil {
		return nil, err
	}
	if err := s.sendVerifyCode(profile.Email, constants.VerifyPurposeSignup); err != nil && !errors.Is(err, ErrVerifyCodeTooFrequent) {
		return nil, err
	}
	return pending, nil
}

func (s *UserAuthService) resolvePending(pendingToken string) (*models.PendingSignup, *models.Profile, error) {
	token := strings.TrimSpace(pendingToken)
	if token == "" {
		return nil, nil, ErrPendingSignupInvalid
	}
	pending, err := s.pendingRepo.GetByToken(token)
	if err != nil {
		return nil, nil, err
	}
	if pending == nil {
		return nil, nil, ErrPendingSignupInvalid
	}
	if pending.ExpiresAt.Before(time.Now()) {
		_ = s.pendingRepo.DeleteByToken(pending.Token)
		return nil, nil, ErrPendingSignupExpired
	}
	profile, err := s.profileRepo.GetByID(pending.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		_ = s.pendingRepo.DeleteByToken(pending.Token)
		return nil, nil, ErrPendingSignupInvalid
	}
	return pending, profile, nil
}

func (s *UserAuthService) verifyCode(email, purpose, code string) (*models.EmailVerifyCode, error) {
	record, err := s.codeRepo.GetLatest(email, purpose)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrVerifyCodeInvalid
	}
	if record.VerifiedAt != nil {
		return nil, ErrVerifyCodeInvalid
	}

	now := time.Now()
	if record.ExpiresAt.Before(now) {
		return nil, ErrVerifyCodeExpired
	}

	maxAttempts := resolveMaxAttempts(s.cfg.Email.VerifyCode)
	if maxAttempts > 0 && record.AttemptCount >= maxAttempts {
		return nil, ErrVerifyCodeAttemptsExceeded
	}

	if strings.TrimSpace(record.Code) != strings.TrimSpace(code) {
		_ = s.codeRepo.IncrementAttempt(record.ID)
		return nil, ErrVerifyCodeInvalid
	}

	if err := s.codeRepo.MarkVerified(record.ID, now); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *UserAuthService) sendVerifyCode(email, purpose string) error {
	latest, err := s.codeRepo.GetLatest(email, purpose)
	if err != nil {
		return err
	}
	now := time.Now()
	if latest != nil {
		interval := time.Duration(resolveSendIntervalSeconds(s.cfg.Email.VerifyCode)) * time.Second
		if !latest.SentAt.IsZero() && now.Sub(latest.SentAt) < interval {
			return ErrVerifyCodeTooFrequent
		}
	}

	code, err := randomNumericCode(resolveCodeLength(s.cfg.Email.VerifyCode))
	if err != nil {
		return err
	}

	if err := s.dispatchVerifyCode(email, code, purpose); err != nil {
		return err
	}

	record := &models.EmailVerifyCode{
		Email:     email,
		Purpose:   strings.ToLower(purpose),
		Code:      code,
		ExpiresAt: now.Add(time.Duration(resolveExpireMinutes(s.cfg.Email.VerifyCode)) * time.Minute),
		SentAt:    now,
		CreatedAt: now,
	}
	return s.codeRepo.Create(record)
}

func (s *UserAuthService) dispatchVerifyCode(email, code, purpose string) error {
	if s.queueClient.Enabled() {
		return s.queueClient.EnqueueVerifyCodeEmail(queue.VerifyCodeEmailPayload{
			Email:   email,
			Code:    code,
			Purpose: purpose,
		})
	}
	if s.emailService == nil {
		return ErrEmailServiceNotConfigured
	}
	err := s.emailService.SendVerifyCode(email, code, purpose)
	if errors.Is(err, ErrEmailServiceDisabled) {
		// dev setups run without SMTP; the code is still persisted
		logger.Warnw("verify_code_email_skipped_disabled", "purpose", purpose)
		return nil
	}
	return err
}

func (s *UserAuthService) pendingSignupTTL() time.Duration {
	minutes := s.cfg.Auth.PendingSignupTTLMinute
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail canonical email form
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveExpireMinutes(cfg config.VerifyCodeConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 10
	}
	return cfg.ExpireMinutes
}

func resolveSendIntervalSeconds(cfg config.VerifyCodeConfig) int {
	if cfg.SendIntervalSeconds <= 0 {
		return 60
	}
	return cfg.SendIntervalSeconds
}

func resolveMaxAttempts(cfg config.VerifyCodeConfig) int {
	if cfg.MaxAttempts <= 0 {
		return 5
	}
	return cfg.MaxAttempts
}

func resolveCodeLength(cfg config.VerifyCodeConfig) int {
	if cfg.Length < 4 || cfg.Length > 10 {
		return 6
	}
	return cfg.Length
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String(), nil
}
