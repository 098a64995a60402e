package constants

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusCancelled = "cancelled"
)

// Admin role constants
const (
	AdminRoleAdmin      = "admin"
	AdminRoleSuperAdmin = "super_admin"
)

// Admin permission constants
const (
	PermProductsRead   = "products:read"
	PermProductsWrite  = "products:write"
	PermProductsDelete = "products:delete"
	PermOrdersRead     = "orders:read"
	PermOrdersWrite    = "orders:write"
	PermOrdersDelete   = "orders:delete"
	PermContentRead    = "content:read"
	PermContentWrite   = "content:write"
	PermContentDelete  = "content:delete"
	PermUsersRead      = "users:read"
	PermUsersWrite     = "users:write"
	PermUsersDelete    = "users:delete"
	PermSettingsRead   = "settings:read"
	PermSettingsWrite  = "settings:write"
	PermAnalyticsRead  = "analytics:read"
)

// Review status constants
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
)

// Analytics range constants
const (
	AnalyticsRange7d  = "7d"
	AnalyticsRange30d = "30d"
	AnalyticsRange90d = "90d"
	AnalyticsRange1y  = "1y"
)

// OTP purpose constants
const (
	VerifyPurposeSignup = "signup"
	VerifyPurposeReset  = "reset"
)

// Queue constants
const (
	QueueDefault           = "default"
	QueueCritical          = "critical"
	TaskVerifyCodeEmail    = "auth:verify_code_email"
	TaskOrderStatusEmail   = "order:status_email"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
	TaskWelcomeEmail       = "auth:welcome_email"
)

// Cache constants
const (
	RedisPrefixDefault = "smiley"
)

// Setting key constants
const (
	SettingKeySiteConfig     = "site_config"
	SettingKeyOrderConfig    = "order_config"
	SettingKeySMTPConfig     = "smtp_config"
	SettingKeyCaptchaConfig  = "captcha_config"
	SettingKeyShippingConfig = "shipping_config"

	SettingFieldSiteCurrency         = "currency"
	SettingFieldPaymentExpireMinutes = "payment_expire_minutes"
	SettingFieldCaptchaEnabled       = "enabled"
)

// Currency constants
const (
	SiteCurrencyDefault = "USD"
)
