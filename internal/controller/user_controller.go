package controller

import (
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/pkg/serverutils"
	"spacenotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Register(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/users", c.Register)

	h := r.Group("/users", auth)
	h.Get("/:username", c.GetProfile)
	h.Post("/:username/rename", c.Rename)
	h.Delete("/:username", c.Delete)
}

func (c *userController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User registered", res))
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("username"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Rename(ctx.Context(), ctx.Params("username"), req.NewUsername)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User renamed", res))
}

func (c *userController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("username")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User deleted", nil))
}
