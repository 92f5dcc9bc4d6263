package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-portal/internal/api/dto"
	"github.com/spec-kit/school-portal/internal/service"
)

// InboxHandler exposes the parent contact actions and the teacher inbox.
type InboxHandler struct {
	inbox *service.InboxService
}

// NewInboxHandler constructs handler.
func NewInboxHandler(inbox *service.InboxService) *InboxHandler {
	return &InboxHandler{inbox: inbox}
}

// RequestVoiceRoom handles POST /parent/voice-rooms.
func (h *InboxHandler) RequestVoiceRoom(c *fiber.Ctx) error {
	parent, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.VoiceRoomCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	request, err := h.inbox.RequestVoiceRoom(c.UserContext(), parent, req.StaffID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewVoiceRoomResponse(*request)})
}

// SendInquiry handles POST /parent/emails.
func (h *InboxHandler) SendInquiry(c *fiber.Ctx) error {
	parent, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.InquiryCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	inquiry, err := h.inbox.SendInquiry(c.UserContext(), parent, req.ToInquiryInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewInquiryResponse(*inquiry)})
}

// Inbox handles GET /teacher/inbox.
func (h *InboxHandler) Inbox(c *fiber.Ctx) error {
	teacher, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	inbox, err := h.inbox.Inbox(c.UserContext(), teacher)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInboxResponse(inbox)})
}

// AcceptVoiceRoom handles POST /teacher/inbox/voice-rooms/:id/accept.
func (h *InboxHandler) AcceptVoiceRoom(c *fiber.Ctx) error {
	return h.respondVoiceRoom(c, true)
}

// RejectVoiceRoom handles POST /teacher/inbox/voice-rooms/:id/reject.
func (h *InboxHandler) RejectVoiceRoom(c *fiber.Ctx) error {
	return h.respondVoiceRoom(c, false)
}

func (h *InboxHandler) respondVoiceRoom(c *fiber.Ctx, accept bool) error {
	teacher, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	request, err := h.inbox.RespondVoiceRoom(c.UserContext(), teacher, c.Params("id"), accept)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVoiceRoomResponse(*request)})
}

// MarkRead handles POST /teacher/inbox/emails/:id/read.
func (h *InboxHandler) MarkRead(c *fiber.Ctx) error {
	teacher, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	inquiry, err := h.inbox.MarkRead(c.UserContext(), teacher, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInquiryResponse(*inquiry)})
}

// Reply handles POST /teacher/inbox/emails/:id/reply.
func (h *InboxHandler) Reply(c *fiber.Ctx) error {
	teacher, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.InquiryReplyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	inquiry, err := h.inbox.Reply(c.UserContext(), teacher, c.Params("id"), req.Reply)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInquiryResponse(*inquiry)})
}
