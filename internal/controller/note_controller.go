package controller

import (
	"strconv"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/pkg/serverutils"
	"spacenotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	UpdateFields(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	service service.INoteService
}

func NewNoteController(service service.INoteService) INoteController {
	return &noteController{service: service}
}

func (c *noteController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/spaces/:slug/notes", auth)
	h.Post("/", c.Create)
	h.Get("/", c.GetAll)
	h.Get("/:number", c.Get)
	h.Patch("/:number/fields", c.UpdateFields)
	h.Delete("/:number", c.Delete)
}

// numberParam parses a sequence number path segment.
func numberParam(ctx *fiber.Ctx) (int64, error) {
	raw := ctx.Params("number")
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewInvalidIdentifier("sequence_number", raw, "must be a positive integer")
	}
	return number, nil
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	username, _ := ctx.Locals("username").(string)
	res, err := c.service.Create(ctx.Context(), username, ctx.Params("slug"), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Note created", res))
}

func (c *noteController) Get(ctx *fiber.Ctx) error {
	number, err := numberParam(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Get(ctx.Context(), ctx.Params("slug"), number)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note detail", res))
}

func (c *noteController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note list", res))
}

func (c *noteController) UpdateFields(ctx *fiber.Ctx) error {
	number, err := numberParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteFieldsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateFields(ctx.Context(), ctx.Params("slug"), number, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note fields updated", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	number, err := numberParam(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.Context(), ctx.Params("slug"), number); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Note deleted", nil))
}
