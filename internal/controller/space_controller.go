package controller

import (
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/pkg/serverutils"
	"spacenotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISpaceController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	UpdateSchema(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
	RemoveMember(ctx *fiber.Ctx) error
	GetMembers(ctx *fiber.Ctx) error
}

type spaceController struct {
	service service.ISpaceService
}

func NewSpaceController(service service.ISpaceService) ISpaceController {
	return &spaceController{service: service}
}

func (c *spaceController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/spaces", auth)
	h.Post("/", c.Create)
	h.Get("/", c.GetAll)
	h.Get("/:slug", c.Get)
	h.Post("/:slug/rename", c.Rename)
	h.Put("/:slug/schema", c.UpdateSchema)
	h.Delete("/:slug", c.Delete)

	h.Get("/:slug/members", c.GetMembers)
	h.Post("/:slug/members", c.AddMember)
	h.Delete("/:slug/members/:username", c.RemoveMember)
}

func (c *spaceController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSpaceRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Space created", res))
}

func (c *spaceController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Space detail", res))
}

func (c *spaceController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Space list", res))
}

func (c *spaceController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameSpaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Rename(ctx.Context(), ctx.Params("slug"), req.NewSlug)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Space renamed", res))
}

func (c *spaceController) UpdateSchema(ctx *fiber.Ctx) error {
	var req dto.UpdateSchemaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.UpdateSchema(ctx.Context(), ctx.Params("slug"), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Schema updated", nil))
}

func (c *spaceController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("slug")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Space deleted", nil))
}

func (c *spaceController) AddMember(ctx *fiber.Ctx) error {
	var req dto.AddMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.AddMember(ctx.Context(), ctx.Params("slug"), req.Username); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse[any]("Member added", nil))
}

func (c *spaceController) RemoveMember(ctx *fiber.Ctx) error {
	if err := c.service.RemoveMember(ctx.Context(), ctx.Params("slug"), ctx.Params("username")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Member removed", nil))
}

func (c *spaceController) GetMembers(ctx *fiber.Ctx) error {
	res, err := c.service.GetMembers(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Member list", res))
}
