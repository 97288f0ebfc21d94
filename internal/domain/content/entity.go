// internal/domain/content/entity.go
package content

import (
	"time"

	"gorm.io/gorm"
)

// Banner represents a storefront hero/promo banner
type Banner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null;size:255" json:"title"`
	Subtitle  string         `gorm:"size:500" json:"subtitle"`
	ImageURL  string         `gorm:"not null;size:500" json:"image_url"`
	LinkURL   string         `gorm:"size:500" json:"link_url"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MenuItem represents a navigation menu entry; ParentID builds the tree
type MenuItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Label     string         `gorm:"not null;size:100" json:"label"`
	URL       string         `gorm:"not null;size:500" json:"url"`
	ParentID  *uint          `gorm:"index" json:"parent_id"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Children []MenuItem `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// BlogPost represents a blog article
type BlogPost struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null;size:255" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Excerpt     string         `gorm:"size:500" json:"excerpt"`
	Body        string         `gorm:"type:text" json:"body"`
	CoverImage  string         `gorm:"size:500" json:"cover_image"`
	IsPublished bool           `gorm:"default:false" json:"is_published"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Banner) TableName() string   { return "banners" }
func (MenuItem) TableName() string { return "menu_items" }
func (BlogPost) TableName() string { return "blog_posts" }
