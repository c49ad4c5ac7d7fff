package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/Usupek/tutor-app/internal/models"
	"github.com/Usupek/tutor-app/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	service sessionApplicationService
}

type sessionApplicationService interface {
	StartSession(ctx context.Context, tutorID int64, studentIDs []string) (*models.Session, error)
	EndSession(ctx context.Context, tutorID int64, sessionID string) (*models.SessionResult, error)
	GetSession(ctx context.Context, tutorID int64, sessionID string) (*models.Session, error)
	ListSessions(ctx context.Context, tutorID int64, status string) ([]models.Session, error)
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type startSessionRequest struct {
	StudentIDs []string `json:"student_ids"`
}

type endSessionRequest struct {
	SessionID string `json:"session_id"`
}

func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	tutorID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req startSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	session, err := h.service.StartSession(c.Context(), tutorID, req.StudentIDs)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Session started",
		"session_id": session.ID,
		"session":    session,
	})
}

func (h *SessionHandler) EndSession(c *fiber.Ctx) error {
	tutorID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req endSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session ID is required"})
	}

	result, err := h.service.EndSession(c.Context(), tutorID, req.SessionID)
	if err != nil {
		return mapSessionError(c, err)
	}

	message := "Session ended. No payment."
	if result.Paid {
		message = "Session completed. Payment credited."
	}

	return c.JSON(fiber.Map{
		"message": message,
		"data":    result,
	})
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	tutorID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID := strings.TrimSpace(c.Params("id"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	session, err := h.service.GetSession(c.Context(), tutorID, sessionID)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	tutorID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessions, err := h.service.ListSessions(c.Context(), tutorID, c.Query("status"))
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func mapSessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "Unauthorized access to this session"})
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": "Tutor already has an active session"})
	case errors.Is(err, services.ErrCorruptSession):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process session request"})
	}
}
