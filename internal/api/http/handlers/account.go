package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-marketplace/internal/api/dto"
	"github.com/spec-kit/course-marketplace/internal/service"
	"github.com/spec-kit/course-marketplace/internal/validation"
)

func signup(c *fiber.Ctx, accounts *service.AccountService) error {
	var req dto.SignupRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	if _, err := accounts.Signup(c.UserContext(), req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "signed up successfully"})
}

func signin(c *fiber.Ctx, accounts *service.AccountService) error {
	var req dto.SigninRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	token, _, err := accounts.Signin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.SigninResponse{Message: "signed in successfully", Token: token})
}
