package service

import (
	"strings"
	"time"

	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
)

// PostService blog content management
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates the post service
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// PostInput admin create/update payload
type PostInput struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Body        string `json:"body"`
	Tag         string `json:"tag"`
	Thumbnail   string `json:"thumbnail"`
	IsFeatured  bool   `json:"is_featured"`
	IsPublished bool   `json:"is_published"`
}

// List public blog list; unpublished posts stay hidden
func (s *PostService) List(filter repository.PostListFilter) ([]models.Post, int64, error) {
	filter.OnlyPublished = true
	return s.postRepo.List(filter)
}

// ListAdmin back-office post list, drafts included
func (s *PostService) ListAdmin(filter repository.PostListFilter) ([]models.Post, int64, error) {
	filter.OnlyPublished = false
	return s.postRepo.List(filter)
}

// GetBySlug public detail lookup
func (s *PostService) GetBySlug(slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetByID back-office detail lookup
func (s *PostService) GetByID(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// Create creates a post; publishing stamps the publish time
func (s *PostService) Create(input PostInput) (*models.Post, error) {
	slug, err := s.validateSlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	post := &models.Post{
		Slug:        slug,
		Title:       strings.TrimSpace(input.Title),
		Excerpt:     input.Excerpt,
		Body:        input.Body,
		Tag:         strings.TrimSpace(input.Tag),
		Thumbnail:   strings.TrimSpace(input.Thumbnail),
		IsFeatured:  input.IsFeatured,
		IsPublished: input.IsPublished,
	}
	if post.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update saves a post; the first publish stamps the publish time once
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	post, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	slug, err := s.validateSlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	post.Slug = slug
	post.Title = strings.TrimSpace(input.Title)
	post.Excerpt = input.Excerpt
	post.Body = input.Body
	post.Tag = strings.TrimSpace(input.Tag)
	post.Thumbnail = strings.TrimSpace(input.Thumbnail)
	post.IsFeatured = input.IsFeatured
	if input.IsPublished && !post.IsPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.IsPublished = input.IsPublished
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post
func (s *PostService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.postRepo.Delete(id)
}

func (s *PostService) validateSlug(slug string, excludeID *uint) (string, error) {
	normalized := normalizeSlug(slug)
	if normalized == "" {
		return "", ErrInvalidSlug
	}
	count, err := s.postRepo.CountBySlug(normalized, excludeID)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrSlugExists
	}
	return normalized, nil
}
