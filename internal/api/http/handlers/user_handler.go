package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-marketplace/internal/api/dto"
	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/service"
)

// UserHandler exposes end-user account endpoints.
type UserHandler struct {
	accounts  *service.AccountService
	purchases *service.PurchaseService
}

// NewUserHandler constructs handler.
func NewUserHandler(accounts *service.AccountService, purchases *service.PurchaseService) *UserHandler {
	return &UserHandler{accounts: accounts, purchases: purchases}
}

// Signup handles POST /user/signup.
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	return signup(c, h.accounts)
}

// Signin handles POST /user/signin.
func (h *UserHandler) Signin(c *fiber.Ctx) error {
	return signin(c, h.accounts)
}

// Purchases handles GET /user/purchases.
func (h *UserHandler) Purchases(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c, domain.RoleUser)
	if err != nil {
		return err
	}

	courses, err := h.purchases.PurchasedCourses(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.CoursesResponse{Message: "purchased courses fetched successfully", Courses: courses})
}
