package handlers

import (
	"github.com/gofiber/fiber/v2"

	"campuspay/internal/middleware"
	"campuspay/internal/money"
	"campuspay/internal/services/ledger"
	"campuspay/internal/utils/response"
)

type PaymentHandler struct {
	engine *ledger.Service
}

func NewPaymentHandler(engine *ledger.Service) *PaymentHandler {
	return &PaymentHandler{engine: engine}
}

// CreatePayment debits the caller's wallet.
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var input struct {
		Amount      money.Amount `json:"amount"`
		Description string       `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.engine.ProcessPayment(c.Context(), middleware.UserID(c), input.Amount, input.Description)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "payment completed", fiber.Map{
		"transaction": result.Transaction,
		"wallet":      result.Wallet,
	})
}

// CreateTopup credits a wallet directly. Reserved for the gateway's
// trusted callers, hence the admin identity.
func (h *PaymentHandler) CreateTopup(c *fiber.Ctx) error {
	var input struct {
		UserID      uint         `json:"user_id"`
		Amount      money.Amount `json:"amount"`
		Description string       `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if input.UserID == 0 {
		return response.BadRequest(c, "user_id is required")
	}

	result, err := h.engine.ProcessTopup(c.Context(), input.UserID, input.Amount, input.Description, nil)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "top-up completed", fiber.Map{
		"transaction": result.Transaction,
		"wallet":      result.Wallet,
	})
}

// CreateRefund reverses a completed payment.
func (h *PaymentHandler) CreateRefund(c *fiber.Ctx) error {
	var input struct {
		TransactionID uint   `json:"transaction_id"`
		Reason        string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if input.TransactionID == 0 {
		return response.BadRequest(c, "transaction_id is required")
	}

	result, err := h.engine.ProcessRefund(c.Context(), input.TransactionID, input.Reason)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "refund completed", fiber.Map{
		"transaction":        result.Transaction,
		"original_reference": result.OriginalReference,
		"wallet":             result.Wallet,
	})
}
