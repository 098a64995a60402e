package service

import (
	"strings"

	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
)

// SettingService site configuration stored as JSON rows
type SettingService struct {
	settingRepo repository.SettingRepository
}

// NewSettingService creates the setting service
func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// GetSiteConfig site config merged over defaults
func (s *SettingService) GetSiteConfig() (models.JSON, error) {
	defaults := models.JSON{
		"site_name":           "SMILEY",
		"currency":            constants.SiteCurrencyDefault,
		"free_shipping_over":  "35.00",
		"support_email":       "",
		"social_links":        models.JSON{},
		"announcement":        "",
		"announcement_active": false,
	}
	setting, err := s.settingRepo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return defaults, nil
	}
	merged := models.JSON{}
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range setting.ValueJSON {
		merged[k] = v
	}
	return merged, nil
}

// GetSiteCurrency the store currency code
func (s *SettingService) GetSiteCurrency() string {
	cfg, err := s.GetSiteConfig()
	if err != nil {
		return constants.SiteCurrencyDefault
	}
	if raw, ok := cfg[constants.SettingFieldSiteCurrency].(string); ok {
		if trimmed := strings.ToUpper(strings.TrimSpace(raw)); trimmed != "" {
			return trimmed
		}
	}
	return constants.SiteCurrencyDefault
}

// Get reads one setting row
func (s *SettingService) Get(key string) (*models.Setting, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, ErrNotFound
	}
	setting, err := s.settingRepo.GetByKey(trimmed)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrNotFound
	}
	return setting, nil
}

// Update writes one setting row
func (s *SettingService) Update(key string, value models.JSON) (*models.Setting, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, ErrNotFound
	}
	return s.settingRepo.Upsert(trimmed, value)
}

// ListAll every setting row, for the admin panel
func (s *SettingService) ListAll() ([]models.Setting, error) {
	return s.settingRepo.ListAll()
}

// GetOrderPaymentExpireMinutes how long a pending order holds its slot
func (s *SettingService) GetOrderPaymentExpireMinutes(fallback int) int {
	setting, err := s.settingRepo.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil || setting == nil {
		return normalizeExpireMinutes(fallback)
	}
	value := parseSettingInt(setting.ValueJSON, constants.SettingFieldPaymentExpireMinutes)
	if value <= 0 {
		return normalizeExpireMinutes(fallback)
	}
	return value
}

func normalizeExpireMinutes(minutes int) int {
	if minutes <= 0 {
		return 30
	}
	return minutes
}

func parseSettingInt(value models.JSON, field string) int {
	if value == nil {
		return 0
	}
	switch typed := value[field].(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	default:
		return 0
	}
}
