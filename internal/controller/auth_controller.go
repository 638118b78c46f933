package controller

import (
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/pkg/serverutils"
	"spacenotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Get("/session", c.Validate)
	h.Post("/logout", c.Logout)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Validate(ctx *fiber.Ctx) error {
	token := bearerToken(ctx)
	username, err := c.service.ValidateSession(ctx.Context(), token)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session valid", dto.ValidateSessionResponse{
		Username: username,
	}))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	token := bearerToken(ctx)
	if err := c.service.Logout(ctx.Context(), token); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}

func bearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}
