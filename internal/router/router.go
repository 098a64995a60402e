package router

import (
	"fmt"
	"strings"

	"github.com/smiley-shop/smiley/internal/cache"
	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	adminhandlers "github.com/smiley-shop/smiley/internal/http/handlers/admin"
	publichandlers "github.com/smiley-shop/smiley/internal/http/handlers/public"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the HTTP surface
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	signInRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:signin", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	adminSignInRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_signin", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		api.GET("/health", publicHandler.Health)
		api.GET("/config", publicHandler.GetSiteConfig)

		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/:slug", publicHandler.GetProductBySlug)
		api.GET("/products/:slug/reviews", publicHandler.ListProductReviews)
		api.GET("/posts", publicHandler.ListPosts)
		api.GET("/posts/:slug", publicHandler.GetPostBySlug)
		api.POST("/newsletter/subscribe", publicHandler.SubscribeNewsletter)
		api.POST("/subscribe", publicHandler.CreateSubscription)
		api.GET("/captcha/image", publicHandler.GetImageCaptcha)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", publicHandler.SignUp)
			auth.POST("/signup/verify", publicHandler.VerifySignup)
			auth.POST("/signup/resend-code", publicHandler.ResendSignupCode)
			auth.POST("/signin", RateLimitMiddleware(redisClient, signInRule, KeyByIPAndJSONField("email")), publicHandler.SignIn)
			auth.POST("/send-verify-code", publicHandler.SendVerifyCode)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		customer := api.Group("")
		customer.Use(ProfileAuthMiddleware(cfg.JWT.SecretKey, c.ProfileRepo))
		{
			customer.POST("/auth/signout", publicHandler.SignOut)
			customer.GET("/auth/session", publicHandler.GetSession)
			customer.PUT("/me/password", publicHandler.ChangePassword)

			customer.GET("/cart", publicHandler.GetCart)
			customer.GET("/cart/last-added", publicHandler.GetCartLastAdded)
			customer.POST("/cart/items", publicHandler.AddCartItem)
			customer.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			customer.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			customer.DELETE("/cart", publicHandler.ClearCart)

			customer.GET("/wishlist", publicHandler.GetWishlist)
			customer.POST("/wishlist/toggle", publicHandler.ToggleWishlist)

			customer.POST("/reviews", publicHandler.CreateReview)

			customer.POST("/checkout", publicHandler.CreateCheckout)
			customer.POST("/billing-portal", publicHandler.CreateBillingPortal)
			customer.GET("/orders", publicHandler.ListOrders)
			customer.GET("/orders/:id", publicHandler.GetOrder)
		}

		api.POST("/webhooks/checkout", publicHandler.CheckoutWebhook)

		admin := api.Group("/admin")
		{
			admin.POST("/auth/signin", RateLimitMiddleware(redisClient, adminSignInRule, KeyByIP), adminHandler.SignIn)

			authorized := admin.Group("")
			authorized.Use(AdminSessionMiddleware(c.AdminAuthService))
			{
				authorized.POST("/auth/signout", adminHandler.SignOut)
				authorized.GET("/auth/me", adminHandler.GetMe)
				authorized.PUT("/auth/password", adminHandler.ChangePassword)

				authorized.GET("/analytics/dashboard",
					RequirePermission(c.AdminAuthService, constants.PermAnalyticsRead), adminHandler.GetAnalyticsDashboard)

				products := authorized.Group("/products")
				{
					products.GET("", RequirePermission(c.AdminAuthService, constants.PermProductsRead), adminHandler.ListProducts)
					products.GET("/:id", RequirePermission(c.AdminAuthService, constants.PermProductsRead), adminHandler.GetProduct)
					products.POST("", RequirePermission(c.AdminAuthService, constants.PermProductsWrite), adminHandler.CreateProduct)
					products.PUT("/:id", RequirePermission(c.AdminAuthService, constants.PermProductsWrite), adminHandler.UpdateProduct)
					products.DELETE("/:id", RequirePermission(c.AdminAuthService, constants.PermProductsDelete), adminHandler.DeleteProduct)
				}

				posts := authorized.Group("/posts")
				{
					posts.GET("", RequirePermission(c.AdminAuthService, constants.PermContentRead), adminHandler.ListPosts)
					posts.GET("/:id", RequirePermission(c.AdminAuthService, constants.PermContentRead), adminHandler.GetPost)
					posts.POST("", RequirePermission(c.AdminAuthService, constants.PermContentWrite), adminHandler.CreatePost)
					posts.PUT("/:id", RequirePermission(c.AdminAuthService, constants.PermContentWrite), adminHandler.UpdatePost)
					posts.DELETE("/:id", RequirePermission(c.AdminAuthService, constants.PermContentDelete), adminHandler.DeletePost)
				}

				reviews := authorized.Group("/reviews")
				{
					reviews.GET("", RequirePermission(c.AdminAuthService, constants.PermContentRead), adminHandler.ListReviews)
					reviews.POST("/:id/approve", RequirePermission(c.AdminAuthService, constants.PermContentWrite), adminHandler.ApproveReview)
					reviews.DELETE("/:id", RequirePermission(c.AdminAuthService, constants.PermContentDelete), adminHandler.DeleteReview)
				}

				orders := authorized.Group("/orders")
				{
					orders.GET("", RequirePermission(c.AdminAuthService, constants.PermOrdersRead), adminHandler.ListOrders)
					orders.GET("/:id", RequirePermission(c.AdminAuthService, constants.PermOrdersRead), adminHandler.GetOrder)
					orders.PATCH("/:id", RequirePermission(c.AdminAuthService, constants.PermOrdersWrite), adminHandler.UpdateOrderStatus)
				}

				customers := authorized.Group("/customers")
				{
					customers.GET("", RequirePermission(c.AdminAuthService, constants.PermUsersRead), adminHandler.ListCustomers)
					customers.GET("/:id", RequirePermission(c.AdminAuthService, constants.PermUsersRead), adminHandler.GetCustomer)
				}

				adminUsers := authorized.Group("/admin-users")
				{
					adminUsers.GET("", RequirePermission(c.AdminAuthService, constants.PermUsersRead), adminHandler.ListAdminUsers)
					adminUsers.GET("/:id", RequirePermission(c.AdminAuthService, constants.PermUsersRead), adminHandler.GetAdminUser)
					adminUsers.POST("", RequirePermission(c.AdminAuthService, constants.PermUsersWrite), adminHandler.CreateAdminUser)
					adminUsers.PUT("/:id", RequirePermission(c.AdminAuthService, constants.PermUsersWrite), adminHandler.UpdateAdminUser)
					adminUsers.DELETE("/:id", RequirePermission(c.AdminAuthService, constants.PermUsersDelete), adminHandler.DeleteAdminUser)
				}

				settings := authorized.Group("/settings")
				{
					settings.GET("", RequirePermission(c.AdminAuthService, constants.PermSettingsRead), adminHandler.ListSettings)
					settings.PUT("/:key", RequirePermission(c.AdminAuthService, constants.PermSettingsWrite), adminHandler.UpdateSetting)
				}

				authorized.GET("/subscribers",
					RequirePermission(c.AdminAuthService, constants.PermUsersRead), adminHandler.ListSubscribers)
			}
		}
	}

	return r
}
