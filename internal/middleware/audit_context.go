package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adityawarmn/projectflow-api/internal/audit"
)

// AuditContext carries the authenticated actor and the request origin into
// the user context, where the activity recorder picks them up. Requests
// without an authenticated user stay attributable to the system actor.
func AuditContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		actor := audit.Actor{}
		if id, ok := c.Locals("user_id").(uint); ok {
			actor.ID = &id
		}
		if name, ok := c.Locals("user_name").(string); ok {
			actor.Name = strings.TrimSpace(name)
		}
		if actor.ID != nil || actor.Name != "" {
			ctx = audit.WithActor(ctx, actor)
		}

		ctx = audit.WithRequestMeta(ctx, audit.RequestMeta{
			IP:        c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		})

		c.SetUserContext(ctx)
		return c.Next()
	}
}
