package country

import (
	"strconv"
	"time"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/services/resolver"
	"github.com/careerhq/careerhq-api/utils/cache"
	"github.com/careerhq/careerhq-api/utils/middleware"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/careerhq/careerhq-api/utils/slug"
	"github.com/careerhq/careerhq-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const detailCacheTTL = 10 * time.Minute

// CountryHandler handles country-related requests
type CountryHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	cache     *cache.RedisCache // nil when Redis is unavailable
}

// NewCountryHandler creates a new country handler
func NewCountryHandler(db *gorm.DB, redisCache *cache.RedisCache) *CountryHandler {
	return &CountryHandler{
		db:        db,
		validator: validation.NewValidator(),
		cache:     redisCache,
	}
}

// CreateCountryRequest represents the request body for creating a country
type CreateCountryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Code        string `json:"code" validate:"omitempty,min=2,max=10"`
	Currency    string `json:"currency" validate:"omitempty,min=3,max=10"`
	Flag        string `json:"flag" validate:"omitempty,max=16"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Published   *bool  `json:"published" validate:"omitempty"`
}

// UpdateCountryRequest represents the request body for updating a country
type UpdateCountryRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=255"`
	Code        string `json:"code" validate:"omitempty,min=2,max=10"`
	Currency    string `json:"currency" validate:"omitempty,min=3,max=10"`
	Flag        string `json:"flag" validate:"omitempty,max=16"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Published   *bool  `json:"published" validate:"omitempty"`
}

// ListCountries handles GET /api/countries
func (h *CountryHandler) ListCountries(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	query := h.db.Model(&model.Country{})

	// Unpublished records are visible to back-office users only
	if user, ok := middleware.GetUser(c); !ok || !user.IsAdmin() {
		query = query.Where("published = ?", true)
	}

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count countries")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var countries []model.Country
	if err := query.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&countries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch countries")
	}

	return response.Paginated(c, countries, pagination)
}

// GetCountry handles GET /api/countries/:id where :id is a native id, slug, or
// legacy name value
func (h *CountryHandler) GetCountry(c *fiber.Ctx) error {
	candidate := c.Params("id")
	if candidate == "" {
		return response.BadRequest(c, "Country identifier is required")
	}

	user, ok := middleware.GetUser(c)
	isAdmin := ok && user.IsAdmin()

	var country model.Country
	if !isAdmin && h.cache != nil {
		if err := h.cache.GetJSON(c.Context(), cacheKey(candidate), &country); err == nil {
			return response.Success(c, country)
		}
	}

	var err error
	if isAdmin {
		err = resolver.FindBySlugOrID(h.db, &country, candidate, "name")
	} else {
		err = resolver.FindPublished(h.db, &country, candidate, "name")
	}
	if err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Country identifier is required")
		}
		return response.NotFound(c, "Country not found")
	}

	if !isAdmin && h.cache != nil {
		h.cache.SetJSON(c.Context(), cacheKey(candidate), country, detailCacheTTL)
	}

	return response.Success(c, country)
}

// CreateCountry handles POST /api/countries
func (h *CountryHandler) CreateCountry(c *fiber.Ctx) error {
	var req CreateCountryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	var existing model.Country
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return response.Conflict(c, "Country with this name already exists")
	}

	country := model.Country{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Code:        validation.SanitizeString(req.Code),
		Currency:    validation.SanitizeString(req.Currency),
		Flag:        req.Flag,
		Description: validation.SanitizeString(req.Description),
		Published:   true,
	}
	if req.Published != nil {
		country.Published = *req.Published
	}

	if err := h.db.Create(&country).Error; err != nil {
		return response.InternalServerError(c, "Failed to create country")
	}

	return response.Created(c, country)
}

// UpdateCountry handles PUT /api/countries/:id
func (h *CountryHandler) UpdateCountry(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var req UpdateCountryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var country model.Country
	if err := resolver.FindBySlugOrID(h.db, &country, candidate, "name"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Country identifier is required")
		}
		return response.NotFound(c, "Country not found")
	}

	if req.Name != "" && req.Name != country.Name {
		var existing model.Country
		if err := h.db.Where("name = ? AND id != ?", req.Name, country.ID).First(&existing).Error; err == nil {
			return response.Conflict(c, "Country with this name already exists")
		}
		country.Name = validation.SanitizeString(req.Name)
		// Slug follows the name at write time
		country.Slug = slug.Make(country.Name)
	}
	if req.Code != "" {
		country.Code = validation.SanitizeString(req.Code)
	}
	if req.Currency != "" {
		country.Currency = validation.SanitizeString(req.Currency)
	}
	if req.Flag != "" {
		country.Flag = req.Flag
	}
	if req.Description != "" {
		country.Description = validation.SanitizeString(req.Description)
	}
	if req.Published != nil {
		country.Published = *req.Published
	}

	if err := h.db.Save(&country).Error; err != nil {
		return response.InternalServerError(c, "Failed to update country")
	}

	h.invalidate(c, candidate, &country)

	return response.SuccessWithMessage(c, "Country updated successfully", country)
}

// DeleteCountry handles DELETE /api/countries/:id
func (h *CountryHandler) DeleteCountry(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var country model.Country
	if err := resolver.FindBySlugOrID(h.db, &country, candidate, "name"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Country identifier is required")
		}
		return response.NotFound(c, "Country not found")
	}

	if err := h.db.Delete(&country).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete country")
	}

	h.invalidate(c, candidate, &country)

	return response.SuccessWithMessage(c, "Country deleted successfully", nil)
}

func cacheKey(candidate string) string {
	return "country:" + candidate
}

// invalidate clears cached detail entries for the record. Keys built from
// legacy name candidates are left to expire with the TTL.
func (h *CountryHandler) invalidate(c *fiber.Ctx, candidate string, country *model.Country) {
	if h.cache == nil {
		return
	}
	keys := []string{cacheKey(candidate), cacheKey(country.ID)}
	if country.Slug != "" {
		keys = append(keys, cacheKey(country.Slug))
	}
	h.cache.Delete(c.Context(), keys...)
}
