package service

import (
	"strings"
	"sync"
	"time"

	"github.com/smiley-shop/smiley/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaService image captcha for the admin sign-in form
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService creates the captcha service
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled reports whether sign-in requires a captcha
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// CaptchaChallenge image challenge handed to the client
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// Generate builds a new image challenge
func (s *CaptchaService) Generate() (*CaptchaChallenge, error) {
	driver := base64Captcha.NewDriverString(
		resolveCaptchaDim(s.cfg.Height, 80),
		resolveCaptchaDim(s.cfg.Width, 240),
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		resolveCaptchaLength(s.cfg.Length),
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks and consumes a challenge answer
func (s *CaptchaService) Verify(captchaID, answer string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	answer = strings.TrimSpace(answer)
	if captchaID == "" || answer == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureStore().Verify(captchaID, answer, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		maxStore := s.cfg.MaxStore
		if maxStore <= 0 {
			maxStore = 10240
		}
		expire := s.cfg.ExpireSeconds
		if expire <= 0 {
			expire = 300
		}
		s.store = base64Captcha.NewMemoryStore(maxStore, time.Duration(expire)*time.Second)
	}
	return s.store
}

func resolveCaptchaDim(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func resolveCaptchaLength(length int) int {
	if length < 4 || length > 8 {
		return 5
	}
	return length
}
