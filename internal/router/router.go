package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TofuAo/Masjid-App-sub001/internal/config"
	"github.com/TofuAo/Masjid-App-sub001/internal/handler"
	"github.com/TofuAo/Masjid-App-sub001/internal/middleware"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler              *handler.AuthHandler
	AnnouncementHandler      *handler.AnnouncementHandler
	AdminActionHandler       *handler.AdminActionHandler
	AdminAnnouncementHandler *handler.AdminAnnouncementHandler
	GradeRangeHandler        *handler.GradeRangeHandler
	StudentHandler           *handler.StudentHandler
	TeacherHandler           *handler.TeacherHandler
	ClassHandler             *handler.ClassHandler
	AttendanceHandler        *handler.AttendanceHandler
	FeeHandler               *handler.FeeHandler
	ResultHandler            *handler.ResultHandler
	JWTMiddleware            fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(api.Group("/announcements"))
	}
	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute)))
	}

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := app.Group("/api/admin", jwtMiddleware)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleTeacher)

	if deps.AdminActionHandler != nil {
		deps.AdminActionHandler.Register(admin.Group("/actions", adminOnly))
	}
	if deps.GradeRangeHandler != nil {
		// Staff may read the partition, replacing it stays admin-only.
		deps.GradeRangeHandler.Register(admin.Group("/settings/grade-ranges", staff), adminOnly)
	}
	if deps.AdminAnnouncementHandler != nil {
		deps.AdminAnnouncementHandler.Register(admin.Group("/announcements", adminOnly))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(admin.Group("/students", staff))
	}
	if deps.TeacherHandler != nil {
		deps.TeacherHandler.Register(admin.Group("/teachers", adminOnly))
	}
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(admin.Group("/classes", staff))
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(admin.Group("/attendance", staff))
	}
	if deps.FeeHandler != nil {
		deps.FeeHandler.Register(admin.Group("/fees", staff))
	}
	if deps.ResultHandler != nil {
		deps.ResultHandler.Register(admin.Group("/results", staff))
	}
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterAdmin(admin.Group("/users", adminOnly))
	}
}
