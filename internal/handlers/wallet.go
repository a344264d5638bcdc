package handlers

import (
	"github.com/gofiber/fiber/v2"

	"campuspay/internal/middleware"
	"campuspay/internal/repositories"
	"campuspay/internal/repositories/cache"
	"campuspay/internal/utils/pagination"
	"campuspay/internal/utils/response"
)

type WalletHandler struct {
	store repositories.Store
	cache *cache.Service
}

// NewWalletHandler creates the wallet read handlers. cache may be nil.
func NewWalletHandler(store repositories.Store, cacheSvc *cache.Service) *WalletHandler {
	return &WalletHandler{store: store, cache: cacheSvc}
}

// GetWallet returns the caller's wallet, served from cache when fresh.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if h.cache != nil {
		if wallet, ok := h.cache.GetWallet(c.Context(), userID); ok {
			return response.Success(c, "wallet", wallet)
		}
	}

	wallet, err := h.store.Wallets().GetByUserID(c.Context(), userID)
	if err != nil {
		return response.Error(c, fiber.StatusNotFound, "WALLET_NOT_FOUND", "wallet not found")
	}

	if h.cache != nil {
		// Best effort; a failed write only costs the next read.
		_ = h.cache.SetWallet(c.Context(), wallet)
	}
	return response.Success(c, "wallet", wallet)
}

// ListTransactions pages through the caller's transaction history.
func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	p := pagination.ParseFromRequest(c)

	txns, total, err := h.store.Transactions().ListByUser(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, txns))
}
