package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adityawarmn/projectflow-api/internal/config"
	"github.com/adityawarmn/projectflow-api/internal/handler"
	"github.com/adityawarmn/projectflow-api/internal/middleware"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	ProjectHandler     *handler.ProjectHandler
	SprintHandler      *handler.SprintHandler
	TaskHandler        *handler.TaskHandler
	ActivityLogHandler *handler.ActivityLogHandler
	ReportHandler      *handler.ReportHandler
	DashboardHandler   *handler.DashboardHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)

		protected := api.Group("/auth", jwtMiddleware, middleware.AuditContext())
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.UserHandler != nil {
		users := api.Group("/users", jwtMiddleware, middleware.AuditContext())
		deps.UserHandler.Register(users)
	}

	if deps.ProjectHandler != nil {
		projects := api.Group("/projects", jwtMiddleware, middleware.AuditContext())
		deps.ProjectHandler.Register(projects)

		if deps.SprintHandler != nil {
			deps.SprintHandler.Register(projects.Group("/:id/sprints"))
		}
		if deps.TaskHandler != nil {
			deps.TaskHandler.Register(projects.Group("/:id/tasks"))
		}
	}

	if deps.ActivityLogHandler != nil {
		logs := api.Group("/activity-logs", jwtMiddleware, middleware.AuditContext())
		deps.ActivityLogHandler.Register(logs)

		admin := api.Group("/admin/activity-logs", jwtMiddleware, middleware.AuditContext(),
			middleware.RequireRole(models.RoleAdmin))
		deps.ActivityLogHandler.RegisterAdmin(admin)
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports", jwtMiddleware)
		deps.ReportHandler.Register(reports)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}
}
