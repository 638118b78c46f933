package controller

import (
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/pkg/serverutils"
	"spacenotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type attachmentController struct {
	service service.IAttachmentService
}

func NewAttachmentController(service service.IAttachmentService) IAttachmentController {
	return &attachmentController{service: service}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/spaces/:slug/attachments", auth)
	h.Post("/", c.Create)
	h.Get("/", c.GetAll)
	h.Get("/:number", c.Get)
	h.Delete("/:number", c.Delete)
}

func (c *attachmentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAttachmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	username, _ := ctx.Locals("username").(string)
	res, err := c.service.Create(ctx.Context(), username, ctx.Params("slug"), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Attachment created", res))
}

func (c *attachmentController) Get(ctx *fiber.Ctx) error {
	number, err := numberParam(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Get(ctx.Context(), ctx.Params("slug"), number)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Attachment detail", res))
}

func (c *attachmentController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Attachment list", res))
}

func (c *attachmentController) Delete(ctx *fiber.Ctx) error {
	number, err := numberParam(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.Context(), ctx.Params("slug"), number); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Attachment deleted", nil))
}
