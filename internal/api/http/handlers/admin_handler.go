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

// AdminHandler exposes admin account and course management endpoints.
type AdminHandler struct {
	accounts *service.AccountService
	courses  *service.CourseService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(accounts *service.AccountService, courses *service.CourseService) *AdminHandler {
	return &AdminHandler{accounts: accounts, courses: courses}
}

// Signup handles POST /admin/signup.
func (h *AdminHandler) Signup(c *fiber.Ctx) error {
	return signup(c, h.accounts)
}

// Signin handles POST /admin/signin.
func (h *AdminHandler) Signin(c *fiber.Ctx) error {
	return signin(c, h.accounts)
}

// CreateCourse handles POST /admin/course.
func (h *AdminHandler) CreateCourse(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c, domain.RoleAdmin)
	if err != nil {
		return err
	}
	var req dto.CreateCourseRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	course, err := h.courses.Create(c.UserContext(), principal.ID, req.Course(principal.ID))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CourseResponse{Message: "course created successfully", Course: course})
}

// UpdateCourse handles PUT /admin/course/:id.
func (h *AdminHandler) UpdateCourse(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c, domain.RoleAdmin)
	if err != nil {
		return err
	}
	courseID, err := validation.ObjectID("id", c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateCourseRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	course, err := h.courses.Update(c.UserContext(), principal.ID, courseID, req.Patch())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CourseResponse{Message: "course updated successfully", Course: course})
}

// DeleteCourse handles DELETE /admin/course/:id.
func (h *AdminHandler) DeleteCourse(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c, domain.RoleAdmin)
	if err != nil {
		return err
	}
	courseID, err := validation.ObjectID("id", c.Params("id"))
	if err != nil {
		return err
	}

	course, err := h.courses.Delete(c.UserContext(), principal.ID, courseID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.CourseResponse{Message: "course deleted successfully", Course: course})
}

// ListCourses handles GET /admin/course/bulk.
func (h *AdminHandler) ListCourses(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c, domain.RoleAdmin)
	if err != nil {
		return err
	}

	courses, err := h.courses.ListByCreator(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.CoursesResponse{Message: "courses fetched successfully", Courses: courses})
}
