// internal/domain/content/service.go
package content

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested content row does not exist.
var ErrNotFound = errors.New("content not found")

// Service handles banner, menu and blog post management
type Service struct {
	db *gorm.DB
}

// NewService creates a new content service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Banners

// ListBanners returns banners; activeOnly filters to the storefront view
func (s *Service) ListBanners(activeOnly bool) ([]Banner, error) {
	var banners []Banner
	query := s.db.Order("sort_order ASC, created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

// CreateBanner creates a banner
func (s *Service) CreateBanner(banner *Banner) error {
	if err := s.db.Create(banner).Error; err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

// UpdateBanner saves changes to a banner
func (s *Service) UpdateBanner(banner *Banner) error {
	if err := s.db.Save(banner).Error; err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	return nil
}

// GetBanner retrieves a banner by ID
func (s *Service) GetBanner(id uint) (*Banner, error) {
	var banner Banner
	if err := s.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve banner: %w", err)
	}
	return &banner, nil
}

// DeleteBanner soft-deletes a banner
func (s *Service) DeleteBanner(id uint) error {
	result := s.db.Delete(&Banner{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete banner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Menu

// GetMenu returns the navigation tree (top-level items with children)
func (s *Service) GetMenu(activeOnly bool) ([]MenuItem, error) {
	var items []MenuItem
	query := s.db.Preload("Children", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("parent_id IS NULL").Order("sort_order ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return items, nil
}

// CreateMenuItem creates a menu entry
func (s *Service) CreateMenuItem(item *MenuItem) error {
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem saves changes to a menu entry
func (s *Service) UpdateMenuItem(item *MenuItem) error {
	if err := s.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	return nil
}

// DeleteMenuItem removes a menu entry and reparents nothing; children
// are deleted with it.
func (s *Service) DeleteMenuItem(id uint) error {
	result := s.db.Where("id = ? OR parent_id = ?", id, id).Delete(&MenuItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Blog posts

// ListPosts returns blog posts, newest first; publishedOnly filters to
// the storefront view
func (s *Service) ListPosts(publishedOnly bool) ([]BlogPost, error) {
	var posts []BlogPost
	query := s.db.Order("created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

// GetPostBySlug retrieves a blog post by slug
func (s *Service) GetPostBySlug(slug string) (*BlogPost, error) {
	var post BlogPost
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve blog post: %w", err)
	}
	return &post, nil
}

// CreatePost creates a blog post; publishing stamps PublishedAt
func (s *Service) CreatePost(post *BlogPost) error {
	if post.IsPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if err := s.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

// UpdatePost saves changes to a blog post
func (s *Service) UpdatePost(post *BlogPost) error {
	if post.IsPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if err := s.db.Save(post).Error; err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	return nil
}

// DeletePost soft-deletes a blog post
func (s *Service) DeletePost(id uint) error {
	result := s.db.Delete(&BlogPost{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete blog post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
