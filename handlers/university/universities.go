package university

import (
	"strconv"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/services/resolver"
	"github.com/careerhq/careerhq-api/utils/middleware"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/careerhq/careerhq-api/utils/slug"
	"github.com/careerhq/careerhq-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UniversityHandler handles university-related requests
type UniversityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(db *gorm.DB) *UniversityHandler {
	return &UniversityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUniversityRequest represents the request body for creating a university
type CreateUniversityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	CountryID   string `json:"country_id" validate:"required,len=24,hexadecimal"`
	City        string `json:"city" validate:"omitempty,max=255"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	LogoKey     string `json:"logo_key" validate:"omitempty,max=255"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url,max=512"`
	Ranking     int    `json:"ranking" validate:"omitempty,gte=0"`
	Published   *bool  `json:"published" validate:"omitempty"`
}

// UpdateUniversityRequest represents the request body for updating a university
type UpdateUniversityRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=255"`
	CountryID   string `json:"country_id" validate:"omitempty,len=24,hexadecimal"`
	City        string `json:"city" validate:"omitempty,max=255"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	LogoKey     string `json:"logo_key" validate:"omitempty,max=255"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url,max=512"`
	Ranking     *int   `json:"ranking" validate:"omitempty,gte=0"`
	Published   *bool  `json:"published" validate:"omitempty"`
}

// ListUniversities handles GET /api/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	countryID := c.Query("country", "")

	query := h.db.Model(&model.University{})

	if user, ok := middleware.GetUser(c); !ok || !user.IsAdmin() {
		query = query.Where("published = ?", true)
	}

	if search != "" {
		query = query.Where("name ILIKE ? OR city ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if countryID != "" {
		query = query.Where("country_id = ?", countryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count universities")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var universities []model.University
	if err := query.Preload("Country").
		Order("ranking ASC, name ASC").
		Limit(limit).
		Offset(offset).
		Find(&universities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}

	return response.Paginated(c, universities, pagination)
}

// GetUniversity handles GET /api/universities/:id where :id is a native id,
// slug, or legacy name value
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	candidate := c.Params("id")

	user, ok := middleware.GetUser(c)
	isAdmin := ok && user.IsAdmin()

	var university model.University
	var err error
	if isAdmin {
		err = resolver.FindBySlugOrID(h.db, &university, candidate, "name")
	} else {
		err = resolver.FindPublished(h.db, &university, candidate, "name")
	}
	if err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "University identifier is required")
		}
		return response.NotFound(c, "University not found")
	}

	// Load relations for the detail page. The resolved record already answers
	// the request, so a failed relation load falls back to it.
	var detailed model.University
	if err := h.db.Preload("Country").Preload("Courses", "published = ?", true).
		First(&detailed, "id = ?", university.ID).Error; err == nil {
		university = detailed
	}

	return response.Success(c, university)
}

// CreateUniversity handles POST /api/universities
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	var req CreateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	// The country reference must point at an existing record
	var country model.Country
	if err := h.db.Where("id = ?", req.CountryID).First(&country).Error; err != nil {
		return response.BadRequest(c, "Referenced country does not exist")
	}

	newSlug := slug.Make(req.Name)
	var existing model.University
	if err := h.db.Where("slug = ?", newSlug).First(&existing).Error; err == nil {
		return response.Conflict(c, "University with this name already exists")
	}

	university := model.University{
		Name:        req.Name,
		Slug:        newSlug,
		CountryID:   country.ID,
		City:        validation.SanitizeString(req.City),
		Website:     validation.SanitizeString(req.Website),
		Description: validation.SanitizeString(req.Description),
		LogoKey:     req.LogoKey,
		LogoURL:     req.LogoURL,
		Ranking:     req.Ranking,
		Published:   true,
	}
	if req.Published != nil {
		university.Published = *req.Published
	}

	if err := h.db.Create(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to create university")
	}

	return response.Created(c, university)
}

// UpdateUniversity handles PUT /api/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var req UpdateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var university model.University
	if err := resolver.FindBySlugOrID(h.db, &university, candidate, "name"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "University identifier is required")
		}
		return response.NotFound(c, "University not found")
	}

	if req.CountryID != "" && req.CountryID != university.CountryID {
		var country model.Country
		if err := h.db.Where("id = ?", req.CountryID).First(&country).Error; err != nil {
			return response.BadRequest(c, "Referenced country does not exist")
		}
		university.CountryID = country.ID
	}

	if req.Name != "" && req.Name != university.Name {
		newSlug := slug.Make(req.Name)
		var existing model.University
		if err := h.db.Where("slug = ? AND id != ?", newSlug, university.ID).First(&existing).Error; err == nil {
			return response.Conflict(c, "University with this name already exists")
		}
		university.Name = validation.SanitizeString(req.Name)
		// Slug is re-derived whenever the name changes
		university.Slug = newSlug
	} else if university.Slug == "" {
		university.Slug = slug.Make(university.Name)
	}

	if req.City != "" {
		university.City = validation.SanitizeString(req.City)
	}
	if req.Website != "" {
		university.Website = validation.SanitizeString(req.Website)
	}
	if req.Description != "" {
		university.Description = validation.SanitizeString(req.Description)
	}
	if req.LogoKey != "" {
		university.LogoKey = req.LogoKey
	}
	if req.LogoURL != "" {
		university.LogoURL = req.LogoURL
	}
	if req.Ranking != nil {
		university.Ranking = *req.Ranking
	}
	if req.Published != nil {
		university.Published = *req.Published
	}

	if err := h.db.Save(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to update university")
	}

	return response.SuccessWithMessage(c, "University updated successfully", university)
}

// DeleteUniversity handles DELETE /api/universities/:id
func (h *UniversityHandler) DeleteUniversity(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var university model.University
	if err := resolver.FindBySlugOrID(h.db, &university, candidate, "name"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "University identifier is required")
		}
		return response.NotFound(c, "University not found")
	}

	if err := h.db.Delete(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete university")
	}

	return response.SuccessWithMessage(c, "University deleted successfully", nil)
}
