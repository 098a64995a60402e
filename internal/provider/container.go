package provider

import (
	"github.com/smiley-shop/smiley/internal/cache"
	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/queue"
	"github.com/smiley-shop/smiley/internal/repository"
	"github.com/smiley-shop/smiley/internal/service"
)

// Container wires repositories and services once at startup
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProfileRepo         repository.ProfileRepository
	AdminUserRepo       repository.AdminUserRepository
	AdminSessionRepo    repository.AdminSessionRepository
	EmailVerifyCodeRepo repository.EmailVerifyCodeRepository
	PendingSignupRepo   repository.PendingSignupRepository
	ProductRepo         repository.ProductRepository
	CartRepo            repository.CartRepository
	WishlistRepo        repository.WishlistRepository
	OrderRepo           repository.OrderRepository
	ReviewRepo          repository.ReviewRepository
	PostRepo            repository.PostRepository
	NewsletterRepo      repository.NewsletterRepository
	SettingRepo         repository.SettingRepository
	AnalyticsRepo       repository.AnalyticsRepository

	// Services
	EmailService      *service.EmailService
	CaptchaService    *service.CaptchaService
	UserAuthService   *service.UserAuthService
	AdminAuthService  *service.AdminAuthService
	AdminUserService  *service.AdminUserService
	ProductService    *service.ProductService
	CartService       *service.CartService
	WishlistService   *service.WishlistService
	OrderService      *service.OrderService
	ReviewService     *service.ReviewService
	PostService       *service.PostService
	NewsletterService *service.NewsletterService
	SettingService    *service.SettingService
	AnalyticsService  *service.AnalyticsService
}

// NewContainer initializes the container
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.AdminUserRepo = repository.NewAdminUserRepository(db)
	c.AdminSessionRepo = repository.NewAdminSessionRepository(db)
	c.EmailVerifyCodeRepo = repository.NewEmailVerifyCodeRepository(db)
	c.PendingSignupRepo = repository.NewPendingSignupRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.AnalyticsRepo = repository.NewAnalyticsRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.ProfileRepo, c.EmailVerifyCodeRepo, c.PendingSignupRepo, c.EmailService, c.QueueClient)
	c.AdminAuthService = service.NewAdminAuthService(c.Config, c.AdminUserRepo, c.AdminSessionRepo)
	c.AdminUserService = service.NewAdminUserService(c.Config, c.AdminUserRepo, c.AdminSessionRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.Config, c.OrderRepo, c.CartRepo, c.ProductRepo, c.ProfileRepo, c.SettingService, c.QueueClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.PostService = service.NewPostService(c.PostRepo)
	c.NewsletterService = service.NewNewsletterService(c.NewsletterRepo)
	c.AnalyticsService = service.NewAnalyticsService(c.AnalyticsRepo)
}
