package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campuspay/internal/middleware"
	"campuspay/internal/money"
	"campuspay/internal/services/topup"
	"campuspay/internal/utils/pagination"
	"campuspay/internal/utils/response"
)

type TopupRequestHandler struct {
	workflow *topup.Service
}

func NewTopupRequestHandler(workflow *topup.Service) *TopupRequestHandler {
	return &TopupRequestHandler{workflow: workflow}
}

// CreateRequest files a top-up request for admin review.
func (h *TopupRequestHandler) CreateRequest(c *fiber.Ctx) error {
	var input struct {
		Amount money.Amount `json:"amount"`
		Method string       `json:"method"`
		Note   string       `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	req, err := h.workflow.CreateRequest(c.Context(), middleware.UserID(c), input.Amount, input.Method, input.Note)
	if err != nil {
		return domainError(c, err)
	}
	return response.Created(c, "top-up request created", req)
}

// ListRequests pages through the caller's requests.
func (h *TopupRequestHandler) ListRequests(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	reqs, total, err := h.workflow.ListUserRequests(c.Context(), middleware.UserID(c), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, reqs))
}

// CancelRequest withdraws the caller's own pending request.
func (h *TopupRequestHandler) CancelRequest(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid request id")
	}

	req, err := h.workflow.CancelRequest(c.Context(), requestID, middleware.UserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return response.Success(c, "top-up request cancelled", req)
}

// TopupByCard charges a tokenized card and credits the wallet.
func (h *TopupRequestHandler) TopupByCard(c *fiber.Ctx) error {
	var input struct {
		Amount    money.Amount `json:"amount"`
		CardToken string       `json:"card_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if input.CardToken == "" {
		return response.BadRequest(c, "card_token is required")
	}

	result, err := h.workflow.TopupByCard(c.Context(), middleware.UserID(c), input.Amount, input.CardToken)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "top-up completed", fiber.Map{
		"transaction": result.Transaction,
		"wallet":      result.Wallet,
	})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
