package handlers

import (
	"github.com/gofiber/fiber/v2"

	"campuspay/internal/middleware"
	"campuspay/internal/services/ledger"
	"campuspay/internal/services/topup"
	"campuspay/internal/utils/pagination"
	"campuspay/internal/utils/response"
)

type AdminHandler struct {
	engine   *ledger.Service
	workflow *topup.Service
}

func NewAdminHandler(engine *ledger.Service, workflow *topup.Service) *AdminHandler {
	return &AdminHandler{engine: engine, workflow: workflow}
}

// ListPendingRequests is the review queue.
func (h *AdminHandler) ListPendingRequests(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	reqs, total, err := h.workflow.ListPending(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, reqs))
}

// ApproveRequest credits the wallet and consumes the request.
func (h *AdminHandler) ApproveRequest(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid request id")
	}

	result, err := h.engine.ApproveTopupRequest(c.Context(), requestID, middleware.AdminID(c))
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "top-up request approved", fiber.Map{
		"request":     result.Request,
		"transaction": result.Transaction,
		"wallet":      result.Wallet,
	})
}

// RejectRequest marks the request rejected with a reason.
func (h *AdminHandler) RejectRequest(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid request id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	req, err := h.engine.RejectTopupRequest(c.Context(), requestID, middleware.AdminID(c), input.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return response.Success(c, "top-up request rejected", req)
}

// OverrideTransactionStatus is the audited admin path out of a
// terminal transaction status.
func (h *AdminHandler) OverrideTransactionStatus(c *fiber.Ctx) error {
	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	var input struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if input.Reason == "" {
		return response.BadRequest(c, "reason is required")
	}

	txn, err := h.engine.OverrideTransactionStatus(c.Context(), transactionID, middleware.AdminID(c), input.Status, input.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return response.Success(c, "transaction status overridden", txn)
}
