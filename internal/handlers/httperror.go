// Package handlers holds the Fiber HTTP handlers. Handlers stay thin:
// parse, call a service, map domain errors to status codes.
package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"campuspay/internal/errors"
	"campuspay/internal/utils/response"
)

// domainStatus maps domain error sentinels to HTTP status codes.
var domainStatus = map[*errors.DomainError]int{
	errors.ErrWalletNotFound:          fiber.StatusNotFound,
	errors.ErrTransactionNotFound:     fiber.StatusNotFound,
	errors.ErrRequestNotFound:         fiber.StatusNotFound,
	errors.ErrInsufficientBalance:     fiber.StatusUnprocessableEntity,
	errors.ErrDailyLimitExceeded:      fiber.StatusUnprocessableEntity,
	errors.ErrMonthlyLimitExceeded:    fiber.StatusUnprocessableEntity,
	errors.ErrInvalidAmount:           fiber.StatusBadRequest,
	errors.ErrAmountOutOfRange:        fiber.StatusBadRequest,
	errors.ErrInvalidTopupMethod:      fiber.StatusBadRequest,
	errors.ErrInvalidRefundTarget:     fiber.StatusUnprocessableEntity,
	errors.ErrInvalidStatusTransition: fiber.StatusUnprocessableEntity,
	errors.ErrDuplicateReference:      fiber.StatusConflict,
	errors.ErrRequestNotPending:       fiber.StatusConflict,
	errors.ErrNotRequestOwner:         fiber.StatusForbidden,
	errors.ErrEmailTaken:              fiber.StatusConflict,
	errors.ErrInvalidRegistration:     fiber.StatusBadRequest,
	errors.ErrCardChargeFailed:        fiber.StatusPaymentRequired,
}

// domainError writes the matching status for a domain error, or 500
// for anything unrecognized.
func domainError(c *fiber.Ctx, err error) error {
	var derr *errors.DomainError
	if stderrors.As(err, &derr) {
		if status, ok := domainStatus[derr]; ok {
			return response.Error(c, status, derr.Code, derr.Message)
		}
	}
	return response.ServerError(c)
}
