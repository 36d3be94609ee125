package controller

import (
	"errors"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/pkg/serverutils"
	"campus-assistant-be/internal/service"
	internalWS "campus-assistant-be/internal/websocket"
	"campus-assistant-be/pkg/capture"
	"campus-assistant-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	UpdateDraft(ctx *fiber.Ctx) error
	SendQuery(ctx *fiber.Ctx) error
	SendCard(ctx *fiber.Ctx) error
	StartVoice(ctx *fiber.Ctx) error
	VoiceResult(ctx *fiber.Ctx) error
	NewChat(ctx *fiber.Ctx) error
}

type chatController struct {
	dispatchService service.IDispatchService
	hub             *internalWS.Hub
}

func NewChatController(dispatchService service.IDispatchService, hub *internalWS.Hub) IChatController {
	return &chatController{
		dispatchService: dispatchService,
		hub:             hub,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("session", c.CreateSession)
	h.Get("session/:id", c.ShowSession)
	h.Put("session/:id/draft", c.UpdateDraft)
	h.Post("query", c.SendQuery)
	h.Post("card", c.SendCard)
	h.Post("voice/start", c.StartVoice)
	h.Post("voice/result", c.VoiceResult)
	h.Post("new", c.NewChat)

	h.Use("ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws", websocket.New(func(conn *websocket.Conn) {
		sessionId := conn.Query("session_id")
		if sessionId == "" {
			conn.Close()
			return
		}
		internalWS.ServeWs(c.hub, conn, sessionId)
	}))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.dispatchService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) ShowSession(ctx *fiber.Ctx) error {
	res, err := c.dispatchService.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return mapDispatchError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *chatController) UpdateDraft(ctx *fiber.Ctx) error {
	var req dto.UpdateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.dispatchService.UpdateDraft(ctx.Context(), ctx.Params("id"), req.Draft)
	if err != nil {
		return mapDispatchError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update draft", res))
}

func (c *chatController) SendQuery(ctx *fiber.Ctx) error {
	var req dto.SendQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dispatchService.SendQuery(ctx.Context(), req.SessionId, req.Prompt)
	if err != nil {
		return mapDispatchError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send query", res))
}

func (c *chatController) SendCard(ctx *fiber.Ctx) error {
	var req dto.SendCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dispatchService.SendCard(ctx.Context(), req.SessionId, req.Card)
	if err != nil {
		return mapDispatchError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send card", res))
}

func (c *chatController) StartVoice(ctx *fiber.Ctx) error {
	var req dto.VoiceStartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dispatchService.StartVoice(ctx.Context(), req.SessionId)
	if err != nil {
		return mapDispatchError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start voice capture", res))
}

func (c *chatController) VoiceResult(ctx *fiber.Ctx) error {
	var req dto.VoiceResultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ev := capture.Event{Kind: capture.EventTranscript, Transcript: req.Transcript}
	if req.ErrorCode != "" {
		ev = capture.Event{Kind: capture.EventError, ErrorCode: req.ErrorCode}
	} else if req.Cancelled {
		ev = capture.Event{Kind: capture.EventCancelled}
	}

	res, err := c.dispatchService.VoiceResult(ctx.Context(), req.SessionId, ev)
	if err != nil {
		return mapDispatchError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success record voice result", res))
}

func (c *chatController) NewChat(ctx *fiber.Ctx) error {
	var req dto.NewChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dispatchService.NewChat(ctx.Context(), req.SessionId)
	if err != nil {
		return mapDispatchError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start new chat", res))
}

// mapDispatchError turns the dispatcher's typed errors into the standard
// JSON envelope with the matching status code.
func mapDispatchError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	case errors.Is(err, service.ErrCaptureUnavailable):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, service.MsgCaptureUnavailable))
	case errors.Is(err, session.ErrDispatchInFlight),
		errors.Is(err, session.ErrNotIdle),
		errors.Is(err, session.ErrNotListening):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	default:
		return err
	}
}
