package course

import (
	"strconv"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/services/importer"
	"github.com/careerhq/careerhq-api/services/resolver"
	"github.com/careerhq/careerhq-api/utils/middleware"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/careerhq/careerhq-api/utils/slug"
	"github.com/careerhq/careerhq-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	importer  *importer.Importer
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
		importer:  importer.NewImporter(db),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	UniversityID        string   `json:"university_id" validate:"required,len=24,hexadecimal"`
	CountryID           string   `json:"country_id" validate:"required,len=24,hexadecimal"`
	ProgramName         string   `json:"program_name" validate:"required,min=2,max=255"`
	StudyLevel          string   `json:"study_level" validate:"required,oneof=Undergraduate Postgraduate Doctorate Certificate Diploma"`
	Campus              string   `json:"campus" validate:"omitempty,max=255"`
	Duration            string   `json:"duration" validate:"omitempty,max=100"`
	Intakes             string   `json:"intakes" validate:"omitempty,max=255"`
	YearlyTuitionFees   string   `json:"yearly_tuition_fees" validate:"omitempty,max=100"`
	Currency            string   `json:"currency" validate:"omitempty,max=10"`
	ApplicationDeadline string   `json:"application_deadline" validate:"omitempty,max=255"`
	IeltsScore          float64  `json:"ielts_score" validate:"required,gte=0,lte=9"`
	IeltsNoBandLessThan float64  `json:"ielts_no_band_less_than" validate:"required,gte=0,lte=9"`
	PteScore            *float64 `json:"pte_score" validate:"omitempty,gte=10,lte=90"`
	ToeflScore          *float64 `json:"toefl_score" validate:"omitempty,gte=0,lte=120"`
	DuolingoScore       *float64 `json:"duolingo_score" validate:"omitempty,gte=10,lte=160"`
	GmatScore           *float64 `json:"gmat_score" validate:"omitempty,gte=200,lte=800"`
	GreScore            *float64 `json:"gre_score" validate:"omitempty,gte=260,lte=340"`
	Scholarships        []string `json:"scholarships" validate:"omitempty,dive,max=255"`
	CareerProspects     []string `json:"career_prospects" validate:"omitempty,dive,max=255"`
	Accreditation       []string `json:"accreditation" validate:"omitempty,dive,max=255"`
	Specializations     []string `json:"specializations" validate:"omitempty,dive,max=255"`
	Published           *bool    `json:"published" validate:"omitempty"`
}

// UpdateCourseRequest represents the request body for updating a course
type UpdateCourseRequest struct {
	ProgramName         string   `json:"program_name" validate:"omitempty,min=2,max=255"`
	StudyLevel          string   `json:"study_level" validate:"omitempty,oneof=Undergraduate Postgraduate Doctorate Certificate Diploma"`
	Campus              string   `json:"campus" validate:"omitempty,max=255"`
	Duration            string   `json:"duration" validate:"omitempty,max=100"`
	Intakes             string   `json:"intakes" validate:"omitempty,max=255"`
	YearlyTuitionFees   string   `json:"yearly_tuition_fees" validate:"omitempty,max=100"`
	Currency            string   `json:"currency" validate:"omitempty,max=10"`
	ApplicationDeadline string   `json:"application_deadline" validate:"omitempty,max=255"`
	IeltsScore          *float64 `json:"ielts_score" validate:"omitempty,gte=0,lte=9"`
	IeltsNoBandLessThan *float64 `json:"ielts_no_band_less_than" validate:"omitempty,gte=0,lte=9"`
	PteScore            *float64 `json:"pte_score" validate:"omitempty,gte=10,lte=90"`
	ToeflScore          *float64 `json:"toefl_score" validate:"omitempty,gte=0,lte=120"`
	DuolingoScore       *float64 `json:"duolingo_score" validate:"omitempty,gte=10,lte=160"`
	GmatScore           *float64 `json:"gmat_score" validate:"omitempty,gte=200,lte=800"`
	GreScore            *float64 `json:"gre_score" validate:"omitempty,gte=260,lte=340"`
	Scholarships        []string `json:"scholarships" validate:"omitempty,dive,max=255"`
	CareerProspects     []string `json:"career_prospects" validate:"omitempty,dive,max=255"`
	Accreditation       []string `json:"accreditation" validate:"omitempty,dive,max=255"`
	Specializations     []string `json:"specializations" validate:"omitempty,dive,max=255"`
	Published           *bool    `json:"published" validate:"omitempty"`
}

// BulkImportRequest represents the request body for POST /api/courses/bulk-import
type BulkImportRequest struct {
	Courses []importer.CourseRow `json:"courses"`
}

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	universityID := c.Query("university", "")
	countryID := c.Query("country", "")
	studyLevel := c.Query("level", "")

	query := h.db.Model(&model.Course{})

	if user, ok := middleware.GetUser(c); !ok || !user.IsAdmin() {
		query = query.Where("published = ?", true)
	}

	if search != "" {
		query = query.Where("program_name ILIKE ?", "%"+search+"%")
	}
	if universityID != "" {
		query = query.Where("university_id = ?", universityID)
	}
	if countryID != "" {
		query = query.Where("country_id = ?", countryID)
	}
	if studyLevel != "" {
		query = query.Where("study_level = ?", studyLevel)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var courses []model.Course
	if err := query.Preload("University").Preload("Country").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /api/courses/:id where :id is a native id, slug, or
// legacy program name value
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	candidate := c.Params("id")

	user, ok := middleware.GetUser(c)
	isAdmin := ok && user.IsAdmin()

	var course model.Course
	var err error
	if isAdmin {
		err = resolver.FindBySlugOrID(h.db, &course, candidate, "program_name")
	} else {
		err = resolver.FindPublished(h.db, &course, candidate, "program_name")
	}
	if err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Course identifier is required")
		}
		return response.NotFound(c, "Course not found")
	}

	// Load relations for the detail page. The resolved record already answers
	// the request, so a failed relation load falls back to it.
	var detailed model.Course
	if err := h.db.Preload("University").Preload("Country").
		First(&detailed, "id = ?", course.ID).Error; err == nil {
		course = detailed
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.ProgramName = validation.SanitizeString(req.ProgramName)

	// The university must exist and belong to the stated country
	var university model.University
	if err := h.db.Where("id = ?", req.UniversityID).First(&university).Error; err != nil {
		return response.BadRequest(c, "Referenced university does not exist")
	}
	if university.CountryID != req.CountryID {
		return response.BadRequest(c, "University does not belong to the stated country")
	}

	var existing int64
	h.db.Model(&model.Course{}).
		Where("university_id = ? AND program_name = ? AND study_level = ?", req.UniversityID, req.ProgramName, req.StudyLevel).
		Count(&existing)
	if existing > 0 {
		return response.Conflict(c, "Course already exists for this university")
	}

	course := model.Course{
		UniversityID:        req.UniversityID,
		CountryID:           req.CountryID,
		ProgramName:         req.ProgramName,
		StudyLevel:          req.StudyLevel,
		Slug:                slug.Make(req.ProgramName + " " + university.Name),
		Campus:              orDefault(req.Campus, "Main Campus"),
		Duration:            orDefault(req.Duration, "Not specified"),
		Intakes:             validation.SanitizeString(req.Intakes),
		YearlyTuitionFees:   validation.SanitizeString(req.YearlyTuitionFees),
		Currency:            orDefault(req.Currency, "USD"),
		ApplicationDeadline: validation.SanitizeString(req.ApplicationDeadline),
		IeltsScore:          req.IeltsScore,
		IeltsNoBandLessThan: req.IeltsNoBandLessThan,
		PteScore:            req.PteScore,
		ToeflScore:          req.ToeflScore,
		DuolingoScore:       req.DuolingoScore,
		GmatScore:           req.GmatScore,
		GreScore:            req.GreScore,
		Scholarships:        datatypes.NewJSONSlice(req.Scholarships),
		CareerProspects:     datatypes.NewJSONSlice(req.CareerProspects),
		Accreditation:       datatypes.NewJSONSlice(req.Accreditation),
		Specializations:     datatypes.NewJSONSlice(req.Specializations),
		Published:           true,
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := resolver.FindBySlugOrID(h.db, &course, candidate, "program_name"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Course identifier is required")
		}
		return response.NotFound(c, "Course not found")
	}

	if req.ProgramName != "" && req.ProgramName != course.ProgramName {
		course.ProgramName = validation.SanitizeString(req.ProgramName)
		var university model.University
		if err := h.db.Where("id = ?", course.UniversityID).First(&university).Error; err == nil {
			course.Slug = slug.Make(course.ProgramName + " " + university.Name)
		} else {
			course.Slug = slug.Make(course.ProgramName)
		}
	}
	if req.StudyLevel != "" {
		course.StudyLevel = req.StudyLevel
	}
	if req.Campus != "" {
		course.Campus = validation.SanitizeString(req.Campus)
	}
	if req.Duration != "" {
		course.Duration = validation.SanitizeString(req.Duration)
	}
	if req.Intakes != "" {
		course.Intakes = validation.SanitizeString(req.Intakes)
	}
	if req.YearlyTuitionFees != "" {
		course.YearlyTuitionFees = validation.SanitizeString(req.YearlyTuitionFees)
	}
	if req.Currency != "" {
		course.Currency = req.Currency
	}
	if req.ApplicationDeadline != "" {
		course.ApplicationDeadline = validation.SanitizeString(req.ApplicationDeadline)
	}
	if req.IeltsScore != nil {
		course.IeltsScore = *req.IeltsScore
	}
	if req.IeltsNoBandLessThan != nil {
		course.IeltsNoBandLessThan = *req.IeltsNoBandLessThan
	}
	if req.PteScore != nil {
		course.PteScore = req.PteScore
	}
	if req.ToeflScore != nil {
		course.ToeflScore = req.ToeflScore
	}
	if req.DuolingoScore != nil {
		course.DuolingoScore = req.DuolingoScore
	}
	if req.GmatScore != nil {
		course.GmatScore = req.GmatScore
	}
	if req.GreScore != nil {
		course.GreScore = req.GreScore
	}
	if req.Scholarships != nil {
		course.Scholarships = datatypes.NewJSONSlice(req.Scholarships)
	}
	if req.CareerProspects != nil {
		course.CareerProspects = datatypes.NewJSONSlice(req.CareerProspects)
	}
	if req.Accreditation != nil {
		course.Accreditation = datatypes.NewJSONSlice(req.Accreditation)
	}
	if req.Specializations != nil {
		course.Specializations = datatypes.NewJSONSlice(req.Specializations)
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// DeleteCourse handles DELETE /api/courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	candidate := c.Params("id")

	var course model.Course
	if err := resolver.FindBySlugOrID(h.db, &course, candidate, "program_name"); err != nil {
		if err == resolver.ErrEmptyCandidate {
			return response.BadRequest(c, "Course identifier is required")
		}
		return response.NotFound(c, "Course not found")
	}

	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}

// BulkImport handles POST /api/courses/bulk-import. Rows are processed
// independently; the response always carries the full per-row outcome list.
func (h *CourseHandler) BulkImport(c *fiber.Ctx) error {
	var req BulkImportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.Courses) == 0 {
		return response.BadRequest(c, "courses must be a non-empty array")
	}

	result := h.importer.Import(c.Context(), req.Courses)

	return response.Success(c, fiber.Map{"result": result})
}

func orDefault(s, fallback string) string {
	if s = validation.SanitizeString(s); s != "" {
		return s
	}
	return fallback
}
