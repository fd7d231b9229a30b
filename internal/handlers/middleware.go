package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/services"
)

const (
	actorIDLocal = "actor_id"
	orgIDLocal   = "org_id"
)

// ActorContext resolves the acting user from the identity headers set by
// the upstream auth layer and stashes them in request locals. Missing or
// malformed headers are not an error here; endpoints that require an
// actor check for one themselves.
func ActorContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Get("X-Actor-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Locals(actorIDLocal, id)
			}
		}
		if raw := c.Get("X-Org-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Locals(orgIDLocal, id)
			}
		}
		return c.Next()
	}
}

func ActorFromCtx(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(actorIDLocal).(uuid.UUID)
	return id, ok
}

func OrgFromCtx(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(orgIDLocal).(uuid.UUID)
	return id, ok
}

// RateLimit guards mutation endpoints with a per-actor fixed window. A
// nil limiter (no Redis configured) makes it a pass-through.
func RateLimit(limiter services.RateLimiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		caller := c.IP()
		if actorID, ok := ActorFromCtx(c); ok {
			caller = actorID.String()
		}

		key := fmt.Sprintf("rl:%s:%s", c.Route().Path, caller)
		if !limiter.Allow(c.Context(), key, limit, window) {
			return common.NewError(common.CodeRateLimited, "rate limit exceeded", nil)
		}

		return c.Next()
	}
}

// ErrorHandler maps service errors onto HTTP statuses. It is installed
// as the Fiber app's error handler so handlers can just return errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return c.Status(common.HTTPStatus(appErr)).JSON(fiber.Map{
			"error": appErr.Message,
			"code":  string(appErr.Code),
		})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
