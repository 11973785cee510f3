package token

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes token HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a token HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type issueRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Create issues a token for valid phone/password credentials.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tok, err := h.service.Issue(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrUnknownUser), errors.Is(err, ErrInvalidCredentials):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not create the new token")
		}
	}
	return c.Status(http.StatusOK).JSON(tok)
}

// Get returns the token identified by the id query parameter.
func (h *Handler) Get(c *fiber.Ctx) error {
	tok, err := h.service.Read(c.UserContext(), c.Query("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not read the token")
		}
	}
	return c.Status(http.StatusOK).JSON(tok)
}

type renewRequest struct {
	ID     string `json:"id"`
	Extend bool   `json:"extend"`
}

// Renew extends a live token's expiry.
func (h *Handler) Renew(c *fiber.Ctx) error {
	var req renewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.Renew(c.UserContext(), req.ID, req.Extend); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrUnknownToken), errors.Is(err, ErrExpired):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not update the token's expiration")
		}
	}
	return c.SendStatus(http.StatusOK)
}

// Delete removes the token identified by the id query parameter.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Query("id")); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrUnknownToken):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not delete the specified token")
		}
	}
	return c.SendStatus(http.StatusOK)
}
