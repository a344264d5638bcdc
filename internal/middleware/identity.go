// Package middleware holds the HTTP middleware. Authentication lives
// in the upstream gateway; the gateway forwards the verified identity
// in headers which the identity middleware reads into request locals.
package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campuspay/internal/utils/response"
)

// Identity headers set by the gateway.
const (
	HeaderUserID  = "X-User-ID"
	HeaderAdminID = "X-Admin-ID"
)

const (
	localUserID  = "userID"
	localAdminID = "adminID"
)

// RequireUser rejects requests without a valid X-User-ID header.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDHeader(c, HeaderUserID)
		if err != nil {
			return response.Unauthorized(c)
		}
		c.Locals(localUserID, id)
		return c.Next()
	}
}

// RequireAdmin rejects requests without a valid X-Admin-ID header.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDHeader(c, HeaderAdminID)
		if err != nil {
			return response.Unauthorized(c)
		}
		c.Locals(localAdminID, id)
		return c.Next()
	}
}

// UserID returns the identity set by RequireUser. Zero when absent.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}

// AdminID returns the identity set by RequireAdmin. Zero when absent.
func AdminID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localAdminID).(uint)
	return id
}

func parseIDHeader(c *fiber.Ctx, header string) (uint, error) {
	raw := c.Get(header)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrUnauthorized
	}
	return uint(id), nil
}
