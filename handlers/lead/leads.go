package lead

import (
	"strconv"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/careerhq/careerhq-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LeadHandler handles enquiry capture and lead management requests
type LeadHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(db *gorm.DB) *LeadHandler {
	return &LeadHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateLeadRequest represents the public enquiry form payload
type CreateLeadRequest struct {
	Name                 string `json:"name" validate:"required,min=2,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Phone                string `json:"phone" validate:"omitempty,max=50"`
	ProgramOfInterest    string `json:"program_of_interest" validate:"omitempty,max=255"`
	UniversityOfInterest string `json:"university_of_interest" validate:"omitempty,max=255"`
	CountryOfInterest    string `json:"country_of_interest" validate:"omitempty,max=255"`
	Message              string `json:"message" validate:"omitempty,max=5000"`
}

// UpdateLeadStatusRequest represents the request body for a status transition
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted converted closed"`
}

// CreateLead handles POST /api/leads. This is the only public write endpoint.
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	lead := model.Lead{
		Name:                 validation.SanitizeString(req.Name),
		Email:                validation.SanitizeString(req.Email),
		Phone:                validation.SanitizeString(req.Phone),
		ProgramOfInterest:    validation.SanitizeString(req.ProgramOfInterest),
		UniversityOfInterest: validation.SanitizeString(req.UniversityOfInterest),
		CountryOfInterest:    validation.SanitizeString(req.CountryOfInterest),
		Message:              validation.SanitizeString(req.Message),
		Status:               model.LeadStatusNew,
	}

	if err := h.db.Create(&lead).Error; err != nil {
		return response.InternalServerError(c, "Failed to submit enquiry")
	}

	return response.Created(c, lead)
}

// ListLeads handles GET /api/leads (admin only)
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	status := c.Query("status", "")
	search := c.Query("search", "")

	query := h.db.Model(&model.Lead{})

	if status != "" {
		if !model.IsValidLeadStatus(status) {
			return response.BadRequest(c, "Invalid lead status filter")
		}
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count leads")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var leads []model.Lead
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch leads")
	}

	return response.Paginated(c, leads, pagination)
}

// GetLead handles GET /api/leads/:id (admin only)
func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	id := c.Params("id")

	var lead model.Lead
	if err := h.db.Where("id = ?", id).First(&lead).Error; err != nil {
		return response.NotFound(c, "Lead not found")
	}

	return response.Success(c, lead)
}

// UpdateLeadStatus handles PUT /api/leads/:id (admin only)
func (h *LeadHandler) UpdateLeadStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var lead model.Lead
	if err := h.db.Where("id = ?", id).First(&lead).Error; err != nil {
		return response.NotFound(c, "Lead not found")
	}

	lead.Status = req.Status
	if err := h.db.Save(&lead).Error; err != nil {
		return response.InternalServerError(c, "Failed to update lead")
	}

	return response.SuccessWithMessage(c, "Lead status updated successfully", lead)
}

// DeleteLead handles DELETE /api/leads/:id (admin only)
func (h *LeadHandler) DeleteLead(c *fiber.Ctx) error {
	id := c.Params("id")

	var lead model.Lead
	if err := h.db.Where("id = ?", id).First(&lead).Error; err != nil {
		return response.NotFound(c, "Lead not found")
	}

	if err := h.db.Delete(&lead).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete lead")
	}

	return response.SuccessWithMessage(c, "Lead deleted successfully", nil)
}
