package blog

import (
	"strconv"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/services/resolver"
	"github.com/careerhq/careerhq-api/utils/middleware"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/careerhq/careerhq-api/utils/slug"
	"github.com/careerhq/careerhq-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogHandler handles blog post requests
type BlogHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// ContentBlockRequest is one body block in a create or update request
type ContentBlockRequest struct {
	Type string `json:"type" validate:"required,oneof=heading paragraph"`
	Text string `json:"text" validate:"required"`
}

// CreateBlogPostRequest represents the request body for creating a blog post
type CreateBlogPostRequest struct {
	Title     string                `json:"title" validate:"required,min=2,max=255"`
	Excerpt   string                `json:"excerpt" validate:"omitempty,max=500"`
	Content   []ContentBlockRequest `json:"content" validate:"required,min=1,dive"`
	Author    string                `json:"author" validate:"omitempty,max=255"`
	Category  string                `json:"category" validate:"omitempty,max=100"`
	Published *bool                 `json:"published" validate:"omitempty"`
}

// UpdateBlogPostRequest represents the request body for updating a blog post
type UpdateBlogPostRequest struct {
	Title     string                `json:"title" validate:"omitempty,min=2,max=255"`
	Excerpt   string                `json:"excerpt" validate:"omitempty,max=500"`
	Content   []ContentBlockRequest `json:"content" validate:"omitempty,min=1,dive"`
	Author    string                `json:"author" validate:"omitempty,max=255"`
	Category  string                `json:"category" validate:"omitempty,max=100"`
	Published *bool                 `json:"published" validate:"omitempty"`
}

func toBlocks(reqs []ContentBlockRequest) datatypes.JSONSlice[model.ContentBlock] {
	blocks := make([]model.ContentBlock, 0, len(reqs))
	for _, b := range reqs {
		blocks = append(blocks, model.ContentBlock{
			Type: b.Type,
			Text: validation.SanitizeString(b.Text),
		})
	}
	return datatypes.NewJSONSlice(blocks)
}

// ListBlogPosts handles GET /api/blogs
func (h *BlogHandler) ListBlogPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	category := c.Query("category", "")

	query := h.db.Model(&model.BlogPost{})

	if user, ok := middleware.GetUser(c); !ok || !user.IsAdmin() {
		query = query.Where("published = ?", true)
	}

	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count blog posts")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var posts []model.BlogPost
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch blog posts")
	}

	return response.Paginated(c, posts, pagination)
}

// GetBlogPost handles GET /api/blogs/:id where :id is a native id, slug, or
// legacy title value
func (h *BlogHandler) GetBlogPost(c *fiber.Ctx) error {
	candidate := c.Params("id")

	user, ok := middleware.GetUser(c)
	isAdmin := ok && user.IsAdmin()

	var post model.BlogPost
	var err error
	if isAdmin {
		err = resolver.FindBySlugOrID(h.db, &post, candidate, "title")
	} else {
		err = resolver.FindPublished(h.db, &post, candidate, "title")
	}
	if err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Blog post identifier is required")
		}
		return response.NotFound(c, "Blog post not found")
	}

	return response.Success(c, post)
}

// CreateBlogPost handles POST /api/blogs
func (h *BlogHandler) CreateBlogPost(c *fiber.Ctx) error {
	var req CreateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Title = validation.SanitizeString(req.Title)

	var existing int64
	h.db.Model(&model.BlogPost{}).Where("LOWER(title) = LOWER(?)", req.Title).Count(&existing)
	if existing > 0 {
		return response.Conflict(c, "A blog post with this title already exists")
	}

	post := model.BlogPost{
		Title:     req.Title,
		Slug:      slug.Make(req.Title),
		Excerpt:   validation.SanitizeString(req.Excerpt),
		Content:   toBlocks(req.Content),
		Author:    validation.SanitizeString(req.Author),
		Category:  validation.SanitizeString(req.Category),
		Published: true,
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := h.db.Create(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to create blog post")
	}

	return response.Created(c, post)
}

// UpdateBlogPost handles PUT /api/blogs/:id
func (h *BlogHandler) UpdateBlogPost(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var req UpdateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var post model.BlogPost
	if err := resolver.FindBySlugOrID(h.db, &post, candidate, "title"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Blog post identifier is required")
		}
		return response.NotFound(c, "Blog post not found")
	}

	if req.Title != "" && req.Title != post.Title {
		post.Title = validation.SanitizeString(req.Title)
		post.Slug = slug.Make(post.Title)
	}
	if req.Excerpt != "" {
		post.Excerpt = validation.SanitizeString(req.Excerpt)
	}
	if req.Content != nil {
		post.Content = toBlocks(req.Content)
	}
	if req.Author != "" {
		post.Author = validation.SanitizeString(req.Author)
	}
	if req.Category != "" {
		post.Category = validation.SanitizeString(req.Category)
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := h.db.Save(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to update blog post")
	}

	return response.SuccessWithMessage(c, "Blog post updated successfully", post)
}

// DeleteBlogPost handles DELETE /api/blogs/:id
func (h *BlogHandler) DeleteBlogPost(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var post model.BlogPost
	if err := resolver.FindBySlugOrID(h.db, &post, candidate, "title"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Blog post identifier is required")
		}
		return response.NotFound(c, "Blog post not found")
	}

	if err := h.db.Delete(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete blog post")
	}

	return response.SuccessWithMessage(c, "Blog post deleted successfully", nil)
}
