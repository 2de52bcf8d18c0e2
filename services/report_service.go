package services

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"team-manager-system/models"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type ReportInput struct {
	Title      string `json:"title"`
	ReportType string `json:"report_type"`
	Content    string `json:"content"`
}

// Create authors a report. The route is already admin-gated; the capability
// is checked again here so the rule holds no matter who calls the service.
func (s *ReportService) Create(in ReportInput, author *models.User) (*models.AdminReport, error) {
	if author == nil {
		return nil, models.ErrUnauthenticated
	}
	if !author.IsAdminUser() {
		return nil, models.ErrForbidden
	}

	ve := models.NewValidationErrors()
	if strings.TrimSpace(in.Title) == "" {
		ve.Add("title", "Le titre est requis.")
	}
	if !models.IsValidReportType(in.ReportType) {
		ve.Add("report_type", "Type de rapport invalide.")
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	report := &models.AdminReport{
		Title:       strings.TrimSpace(in.Title),
		ReportType:  in.ReportType,
		Content:     in.Content,
		CreatedByID: &author.ID,
	}
	if err := s.DB.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List() ([]models.AdminReport, error) {
	var reports []models.AdminReport
	if err := s.DB.Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// --- Fiber endpoints ---

func (s *ReportService) CreateEndpoint(c *fiber.Ctx) error {
	author, err := currentUser(s.DB, c)
	if err != nil {
		return respondError(c, err)
	}

	var in ReportInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	report, err := s.Create(in, author)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(report)
}

func (s *ReportService) ListEndpoint(c *fiber.Ctx) error {
	reports, err := s.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reports)
}
