package handlers

import (
	"github.com/gofiber/fiber/v2"

	"campuspay/internal/services/user"
	"campuspay/internal/utils/response"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a student account and their wallet.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		StudentID string `json:"student_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	u, err := h.users.Register(c.Context(), user.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		Name:      input.Name,
		StudentID: input.StudentID,
	})
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "registered", fiber.Map{
		"user": fiber.Map{
			"id":         u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"student_id": u.StudentID,
			"role":       u.Role,
		},
		"wallet": u.Wallet,
	})
}
