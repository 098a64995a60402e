package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/repository"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPosts back-office post list, drafts included
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
	}
	posts, total, err := h.PostService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load posts", err)
		return
	}
	response.SuccessWithPage(c, posts, buildPagination(page, pageSize, total))
}

// GetPost back-office post detail
func (h *Handler) GetPost(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid post id", nil)
		return
	}
	post, err := h.PostService.GetByID(id)
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

// CreatePost creates a post
func (h *Handler) CreatePost(c *gin.Context) {
	var input service.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	post, err := h.PostService.Create(input)
	if err != nil {
		respondPostWriteError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost saves a post
func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid post id", nil)
		return
	}
	var input service.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	post, err := h.PostService.Update(id, input)
	if err != nil {
		respondPostWriteError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost removes a post
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid post id", nil)
		return
	}
	if err := h.PostService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		respondError(c, response.CodeInternal, "could not delete the post", err)
		return
	}
	response.SuccessWithMsg(c, "post deleted", nil)
}

func respondPostWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, service.ErrInvalidSlug):
		respondError(c, response.CodeBadRequest, "slug must be lowercase letters, digits and dashes", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "slug already in use", nil)
	default:
		respondError(c, response.CodeInternal, "could not save the post", err)
	}
}
