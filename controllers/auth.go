package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/metrics"
	"github.com/meinhoongagan/healthy-alternative/middleware"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/queue"
	"github.com/meinhoongagan/healthy-alternative/services"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"go.uber.org/zap"
)

type AuthController struct {
	auth     *services.AuthService
	sessions *middleware.Sessions
	events   EventPublisher
	log      *zap.Logger
}

func NewAuthController(auth *services.AuthService, sessions *middleware.Sessions, events EventPublisher, log *zap.Logger) *AuthController {
	return &AuthController{auth: auth, sessions: sessions, events: events, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,bcryptmax"`
}

// Register handles user registration
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var reg services.Registration
	if err := utils.ParseBody(c, &reg); err != nil {
		return err
	}

	user, err := ac.auth.CreateUser(c.UserContext(), reg)
	if err != nil {
		return err
	}
	if err := ac.sessions.Start(c, user.ID); err != nil {
		return err
	}

	publish(c.UserContext(), ac.events, ac.log, queue.EventUserRegistered, user.ID, fiber.Map{
		"userId":   user.ID,
		"userType": user.UserType,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login handles user login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	user, err := ac.auth.AuthenticateUser(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, utils.ErrInvalidCredentials) {
		metrics.Logins.WithLabelValues("rejected").Inc()
		return err
	}
	if err != nil {
		return err
	}
	if err := ac.sessions.Start(c, user.ID); err != nil {
		return err
	}
	metrics.Logins.WithLabelValues("success").Inc()

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout destroys the session and clears the cookie
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.sessions.End(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (ac *AuthController) Me(c *fiber.Ctx, user *models.User) error {
	return c.JSON(fiber.Map{"user": user})
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx, user *models.User) error {
	var req changePasswordRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	ok, err := ac.auth.ChangePassword(c.UserContext(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	if !ok {
		return utils.Respond(c, fiber.StatusBadRequest, utils.CodeInvalidCurrentPassword, "Current password is incorrect")
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
