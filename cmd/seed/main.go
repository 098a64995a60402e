package main

import (
	"fmt"
	"os"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	adminEmail := os.Getenv("SMILEY_DEFAULT_ADMIN_EMAIL")
	adminPass := os.Getenv("SMILEY_DEFAULT_ADMIN_PASSWORD")
	if adminEmail != "" && adminPass != "" {
		if _, err := models.SeedAdminUser(adminEmail, adminPass, "Owner", "super_admin"); err != nil {
			stdLog.Printf("failed to seed admin: %v", err)
		} else {
			stdLog.Printf("seeded super admin: %s", adminEmail)
		}
	} else {
		stdLog.Println("SMILEY_DEFAULT_ADMIN_EMAIL / SMILEY_DEFAULT_ADMIN_PASSWORD not set, skipping admin seed")
	}

	products := []models.Product{
		{
			Slug:        "sonic-brush-pro",
			Name:        "Sonic Brush Pro",
			Description: "Rechargeable sonic toothbrush with three cleaning modes and a 30-day battery.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99)),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1559591937-abc3a5d51b06?w=800"},
			Category:    "brushes",
			Tags:        models.StringArray{"electric", "bestseller"},
			Stock:       120,
			IsActive:    true,
			IsFeatured:  true,
			SortOrder:   300,
		},
		{
			Slug:        "whitening-strips",
			Name:        "Whitening Strips",
			Description: "Enamel-safe whitening strips, 14-day treatment pack.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(24.99)),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1606811841689-23dfddce3e95?w=800"},
			Category:    "whitening",
			Tags:        models.StringArray{"whitening"},
			Stock:       300,
			IsActive:    true,
			IsFeatured:  true,
			SortOrder:   260,
		},
		{
			Slug:        "mint-floss-picks",
			Name:        "Mint Floss Picks",
			Description: "Biodegradable floss picks with a fresh mint coating, 90 count.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(8.99)),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1629909613654-28e377c37b09?w=800"},
			Category:    "floss",
			Tags:        models.StringArray{"eco", "travel"},
			Stock:       500,
			IsActive:    true,
			SortOrder:   200,
		},
		{
			Slug:        "charcoal-toothpaste",
			Name:        "Charcoal Toothpaste",
			Description: "Fluoride toothpaste with activated charcoal for gentle stain removal.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(12.49)),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1571115764595-644a1f56a55c?w=800"},
			Category:    "toothpaste",
			Tags:        models.StringArray{"charcoal"},
			Stock:       0,
			IsActive:    true,
			SortOrder:   180,
		},
		{
			Slug:        "travel-brush-kit",
			Name:        "Travel Brush Kit",
			Description: "Foldable brush, mini paste and floss in a zip case.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1588776814546-1ffcf47267a5?w=800"},
			Category:    "kits",
			Tags:        models.StringArray{"travel"},
			Stock:       85,
			IsActive:    true,
			SortOrder:   150,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("created product: %s", prod.Slug)
			}
			continue
		}
		existing.Name = prod.Name
		existing.Description = prod.Description
		existing.Price = prod.Price
		existing.Images = prod.Images
		existing.Category = prod.Category
		existing.Tags = prod.Tags
		existing.Stock = prod.Stock
		existing.IsActive = prod.IsActive
		existing.IsFeatured = prod.IsFeatured
		existing.SortOrder = prod.SortOrder
		if err := models.DB.Save(&existing).Error; err != nil {
			stdLog.Printf("failed to update product %s: %v", prod.Slug, err)
		} else {
			stdLog.Printf("updated product: %s", prod.Slug)
		}
	}

	posts := []models.Post{
		{
			Slug:        "welcome-to-smiley",
			Title:       "Welcome to SMILEY",
			Excerpt:     "Why we started an oral-care brand that people actually enjoy using.",
			Body:        "SMILEY started with a simple question: why does everything in the dental aisle look like it belongs in a hospital?\n\nWe design oral-care products people are happy to leave on the counter, with ingredients dentists approve of. No blue gel, no fear marketing.\n\nThanks for being here, and keep smiling.",
			Tag:         "brand",
			IsPublished: true,
			IsFeatured:  true,
		},
		{
			Slug:        "how-often-replace-toothbrush",
			Title:       "How Often Should You Replace Your Toothbrush?",
			Excerpt:     "The three-month rule, and the signs you should swap sooner.",
			Body:        "Most dentists recommend replacing your brush head every three months. Frayed bristles clean dramatically worse, and worn heads can harbor bacteria.\n\nSwap sooner if you have been sick, or if the bristles splay before the three-month mark. Our subscription handles the reminder for you.",
			Tag:         "guides",
			IsPublished: true,
		},
		{
			Slug:        "whitening-myths",
			Title:       "Five Whitening Myths, Debunked",
			Excerpt:     "Separating enamel science from marketing claims.",
			Body:        "Myth one: whitening strips destroy enamel. Properly formulated peroxide treatments are enamel-safe when used as directed.\n\nMyth two: charcoal whitens teeth. Charcoal is mildly abrasive and removes surface stains, but it does not change tooth color.\n\nWe cover three more myths inside, with citations.",
			Tag:         "guides",
			IsPublished: true,
		},
	}

	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("post already exists: %s", post.Slug)
		}
	}

	siteConfig := map[string]interface{}{
		"site_name": "SMILEY",
		"currency":  "USD",
		"contact": map[string]string{
			"email":     "hello@smiley.example",
			"instagram": "https://instagram.com/smiley",
		},
	}

	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeySiteConfig).First(&setting).Error; err != nil {
		setting = models.Setting{
			Key:       constants.SettingKeySiteConfig,
			ValueJSON: models.JSON(siteConfig),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("failed to create site config: %v", err)
		} else {
			stdLog.Println("created site config")
		}
	} else {
		setting.ValueJSON = models.JSON(siteConfig)
		if err := models.DB.Save(&setting).Error; err != nil {
			stdLog.Printf("failed to update site config: %v", err)
		} else {
			stdLog.Println("updated site config")
		}
	}

	fmt.Println("\nSeed complete:")
	fmt.Println("- 5 products")
	fmt.Println("- 3 posts")
	fmt.Println("- site configuration")
}
