// internal/interfaces/http/handlers/content.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/content"
	"gorm.io/gorm"
)

// ContentHandler handles banners, navigation menus and blog posts
type ContentHandler struct {
	contentService *content.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{
		contentService: content.NewService(db),
	}
}

// ListBanners handles GET /banners (storefront: active only)
func (h *ContentHandler) ListBanners(c *gin.Context) {
	banners, err := h.contentService.ListBanners(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve banners",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Banners retrieved successfully",
		"data":    banners,
	})
}

// AdminListBanners handles GET /admin/banners
func (h *ContentHandler) AdminListBanners(c *gin.Context) {
	banners, err := h.contentService.ListBanners(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve banners",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Banners retrieved successfully",
		"data":    banners,
	})
}

// CreateBanner handles POST /admin/banners
func (h *ContentHandler) CreateBanner(c *gin.Context) {
	var banner content.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.contentService.CreateBanner(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Banner created successfully",
		"data":    banner,
	})
}

// UpdateBanner handles PUT /admin/banners/:id
func (h *ContentHandler) UpdateBanner(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var banner content.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	banner.ID = id

	if err := h.contentService.UpdateBanner(&banner); err != nil {
		h.writeContentError(c, err, "Banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Banner updated successfully",
		"data":    banner,
	})
}

// DeleteBanner handles DELETE /admin/banners/:id
func (h *ContentHandler) DeleteBanner(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.contentService.DeleteBanner(id); err != nil {
		h.writeContentError(c, err, "Banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Banner deleted successfully",
	})
}

// GetMenu handles GET /menu (storefront: active only)
func (h *ContentHandler) GetMenu(c *gin.Context) {
	menu, err := h.contentService.GetMenu(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve menu",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    menu,
	})
}

// AdminGetMenu handles GET /admin/menu
func (h *ContentHandler) AdminGetMenu(c *gin.Context) {
	menu, err := h.contentService.GetMenu(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve menu",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    menu,
	})
}

// CreateMenuItem handles POST /admin/menu
func (h *ContentHandler) CreateMenuItem(c *gin.Context) {
	var item content.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.contentService.CreateMenuItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /admin/menu/:id
func (h *ContentHandler) UpdateMenuItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var item content.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	item.ID = id

	if err := h.contentService.UpdateMenuItem(&item); err != nil {
		h.writeContentError(c, err, "Menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /admin/menu/:id
func (h *ContentHandler) DeleteMenuItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.contentService.DeleteMenuItem(id); err != nil {
		h.writeContentError(c, err, "Menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item deleted successfully",
	})
}

// ListPosts handles GET /blog (storefront: published only)
func (h *ContentHandler) ListPosts(c *gin.Context) {
	posts, err := h.contentService.ListPosts(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve posts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts retrieved successfully",
		"data":    posts,
	})
}

// GetPostBySlug handles GET /blog/:slug
func (h *ContentHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.contentService.GetPostBySlug(c.Param("slug"))
	if err != nil {
		h.writeContentError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post retrieved successfully",
		"data":    post,
	})
}

// AdminListPosts handles GET /admin/blog
func (h *ContentHandler) AdminListPosts(c *gin.Context) {
	posts, err := h.contentService.ListPosts(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve posts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts retrieved successfully",
		"data":    posts,
	})
}

// CreatePost handles POST /admin/blog
func (h *ContentHandler) CreatePost(c *gin.Context) {
	var post content.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.contentService.CreatePost(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"data":    post,
	})
}

// UpdatePost handles PUT /admin/blog/:id
func (h *ContentHandler) UpdatePost(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var post content.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	post.ID = id

	if err := h.contentService.UpdatePost(&post); err != nil {
		h.writeContentError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"data":    post,
	})
}

// DeletePost handles DELETE /admin/blog/:id
func (h *ContentHandler) DeletePost(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.contentService.DeletePost(id); err != nil {
		h.writeContentError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted successfully",
	})
}

// writeContentError maps content service failures to HTTP statuses
func (h *ContentHandler) writeContentError(c *gin.Context, err error, noun string) {
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": noun + " not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": noun + " operation failed",
	})
}
