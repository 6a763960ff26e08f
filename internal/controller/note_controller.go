package controller

import (
	"strconv"

	"notes-app/internal/dto"
	"notes-app/internal/metrics"
	"notes-app/internal/pkg/serverutils"
	"notes-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	msgFieldsRequired = "Title and content fields are required"
	msgInvalidID      = "ID must be a valid number"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put(":id?", c.Update)
	h.Delete(":id?", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	body, err := parseNoteBody(ctx)
	if err != nil {
		metrics.CountRejected("create")
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), &dto.CreateNoteRequest{NoteRequest: *body})
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	// body is checked before the id, so a bad body wins over a bad id
	body, err := parseNoteBody(ctx)
	if err != nil {
		metrics.CountRejected("update")
		return err
	}

	id, err := parseNoteID(ctx)
	if err != nil {
		metrics.CountRejected("update")
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), &dto.UpdateNoteRequest{Id: id, NoteRequest: *body})
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := parseNoteID(ctx)
	if err != nil {
		metrics.CountRejected("delete")
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// parseNoteBody rejects malformed JSON the same way as missing fields.
func parseNoteBody(ctx *fiber.Ctx) (*dto.NoteRequest, error) {
	var req dto.NoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, serverutils.InvalidInput(msgFieldsRequired)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, serverutils.InvalidInput(msgFieldsRequired)
	}

	return &req, nil
}

// parseNoteID treats 0 like a missing id.
func parseNoteID(ctx *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil || id == 0 {
		return 0, serverutils.InvalidInput(msgInvalidID)
	}
	return id, nil
}
