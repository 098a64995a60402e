package public

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/smiley-shop/smiley/internal/cache"
	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// Health liveness probe: database plus cache
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if models.DB == nil {
		dbStatus = "down"
	} else if sqlDB, err := models.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
	}

	cacheStatus := "ok"
	if err := cache.Ping(ctx); err != nil {
		cacheStatus = "down"
	}

	status := "ok"
	if dbStatus != "ok" {
		status = "degraded"
	}
	response.Success(c, gin.H{
		"status":   status,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}

// GetSiteConfig public site configuration
func (h *Handler) GetSiteConfig(c *gin.Context) {
	cfg, err := h.SettingService.GetSiteConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "could not load site configuration", err)
		return
	}
	response.Success(c, cfg)
}

// ListProducts active products with filters and pagination
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Category:     c.Query("category"),
		Tag:          c.Query("tag"),
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") == "true",
	}
	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load products", err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProductBySlug one active product
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "could not load the product", err)
		return
	}
	response.Success(c, product)
}

// ListPosts published blog posts
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.PostListFilter{
		Page:         page,
		PageSize:     pageSize,
		Tag:          c.Query("tag"),
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") == "true",
	}
	posts, total, err := h.PostService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load posts", err)
		return
	}
	response.SuccessWithPage(c, posts, buildPagination(page, pageSize, total))
}

// GetPostBySlug one published post
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.PostService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		respondError(c, response.CodeInternal, "could not load the post", err)
		return
	}
	response.Success(c, post)
}

// ListProductReviews approved reviews of one product
func (h *Handler) ListProductReviews(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "could not load reviews", err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	reviews, total, err := h.ReviewService.ListApproved(product.ID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load reviews", err)
		return
	}
	response.SuccessWithPage(c, reviews, buildPagination(page, pageSize, total))
}

type createReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// CreateReview submits a review; it stays hidden until approved
func (h *Handler) CreateReview(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	review, err := h.ReviewService.Create(profileID, req.ProductID, req.Rating, req.Title, req.Body)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "could not submit the review")
		return
	}
	response.SuccessWithMsg(c, "review submitted for moderation", review)
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubscribeNewsletter records a newsletter opt-in
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	subscriber, err := h.NewsletterService.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
			return
		}
		respondError(c, response.CodeInternal, "could not subscribe", err)
		return
	}
	response.SuccessWithMsg(c, "subscribed", gin.H{"email": subscriber.Email})
}

// GetImageCaptcha image challenge for the admin sign-in form
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		respondError(c, response.CodeInternal, "could not generate the captcha", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
