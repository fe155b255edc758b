package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-marketplace/internal/api/dto"
	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/service"
	"github.com/spec-kit/course-marketplace/internal/validation"
)

// CourseHandler exposes the public catalogue and the purchase endpoint.
type CourseHandler struct {
	courses   *service.CourseService
	purchases *service.PurchaseService
}

// NewCourseHandler constructs handler.
func NewCourseHandler(courses *service.CourseService, purchases *service.PurchaseService) *CourseHandler {
	return &CourseHandler{courses: courses, purchases: purchases}
}

// Purchase handles POST /course/purchase.
func (h *CourseHandler) Purchase(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c, domain.RoleUser)
	if err != nil {
		return err
	}
	var req dto.PurchaseRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	purchase, err := h.purchases.Purchase(c.UserContext(), principal.ID, req.CourseID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.PurchaseResponse{Message: "course purchased successfully", Purchase: purchase})
}

// Preview handles GET /course/preview.
func (h *CourseHandler) Preview(c *fiber.Ctx) error {
	courses, err := h.courses.Preview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CoursesResponse{Message: "courses fetched successfully", Courses: courses})
}
