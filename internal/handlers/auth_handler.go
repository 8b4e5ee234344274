package handlers

import (
	"errors"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/dto"
	"github.com/craftbase/account-service/internal/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.ResetService
	cfg          *config.Config
}

func NewAuthHandler(authService *services.AuthService, resetService *services.ResetService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		cfg:          cfg,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrors(err))
	}

	user, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
				verr.Field: verr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrors(err))
	}

	pair, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(pair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	pair, err := h.authService.Refresh(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(pair)
}

// PasswordReset handles GET /auth/password-reset/:email. A 404 on unknown
// email mirrors the frontend contract and is a deliberate existence leak.
func (h *AuthHandler) PasswordReset(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	link, err := h.resetService.RequestReset(c.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No user found with this email address",
			})
		}
		if errors.Is(err, services.ErrDeliveryFailed) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Reset code saved but the email could not be sent, please retry",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	resp := dto.MessageResponse{Message: "Password reset link sent"}
	if h.cfg.IsDevelopment() {
		resp.ResetLink = link
	}
	return c.JSON(resp)
}

func (h *AuthHandler) PasswordChange(c *fiber.Ctx) error {
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	err := h.resetService.ConfirmReset(c.Context(), req.UUIDB64, req.OTP, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrResetBadRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrResetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No matching reset request",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Password changed successfully"})
}

// fieldErrors converts an ozzo validation error into the field->message map
// the frontend renders next to form inputs.
func fieldErrors(err error) interface{} {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		out := dto.ValidationErrorResponse{}
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	return dto.ErrorResponse{Error: true, Message: err.Error()}
}
