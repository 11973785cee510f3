package account

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// tokenHeader is the request header carrying the bearer token id.
const tokenHeader = "token"

// Handler exposes user account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	TOSAgreement bool   `json:"tosAgreement"`
}

// Create registers a new user.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	err := h.service.Create(c.UserContext(), CreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Password:     req.Password,
		TOSAgreement: req.TOSAgreement,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrAlreadyExists):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not create the new user")
		}
	}
	return c.SendStatus(http.StatusOK)
}

// Get returns the profile for the phone query parameter, gated by the token
// header.
func (h *Handler) Get(c *fiber.Ctx) error {
	profile, err := h.service.Read(c.UserContext(), c.Query("phone"), c.Get(tokenHeader))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrForbidden):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not read the user")
		}
	}
	return c.Status(http.StatusOK).JSON(profile)
}

type updateRequest struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Update applies self-service field changes, gated by the token header.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	err := h.service.Update(c.UserContext(), UpdateInput{
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}, c.Get(tokenHeader))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrNoUpdatableFields), errors.Is(err, ErrUnknownUser):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrForbidden):
			return fiber.NewError(http.StatusForbidden, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not update the user")
		}
	}
	return c.SendStatus(http.StatusOK)
}

// Delete removes the user named by the phone query parameter, gated by the
// token header.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Query("phone"), c.Get(tokenHeader)); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrUnknownUser):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrForbidden):
			return fiber.NewError(http.StatusForbidden, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "could not delete the specified user")
		}
	}
	return c.SendStatus(http.StatusOK)
}
