package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civicpulse-service/internal/api/dto"
	"github.com/spec-kit/civicpulse-service/internal/domain"
	"github.com/spec-kit/civicpulse-service/internal/service"
	apperrors "github.com/spec-kit/civicpulse-service/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	service *service.TriageService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(triageService *service.TriageService) *ComplaintsHandler {
	return &ComplaintsHandler{service: triageService}
}

// SubmitComplaint POST /complaints.
func (h *ComplaintsHandler) SubmitComplaint(c *fiber.Ctx) error {
	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}
	if strings.TrimSpace(req.CitizenID) == "" {
		return apperrors.NewValidationError("citizen_id required", nil)
	}

	complaint, err := h.service.SubmitComplaint(c.UserContext(), service.IntakeInput{
		Title:       req.Title,
		Description: req.Description,
		CitizenName: req.CitizenName,
		CitizenID:   req.CitizenID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// ListComplaints GET /complaints. The optional citizen_id query narrows
// the listing to one citizen's own reports.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	complaints := h.service.ListComplaints(c.Query("citizen_id"))
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, dto.FromComplaint(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetComplaint GET /complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	complaint, err := h.service.GetComplaint(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// UpdateStatus PATCH /complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}
	complaint, err := h.service.TransitionStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}
