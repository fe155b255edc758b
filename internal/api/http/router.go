package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/course-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/course-marketplace/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Admin       *handlers.AdminHandler
	User        *handlers.UserHandler
	Course      *handlers.CourseHandler
	AdminAuth   *auth.AuthMiddleware
	UserAuth    *auth.AuthMiddleware
	RateLimiter *RateLimiter
	Gatherer    prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	admin := app.Group("/admin")
	admin.Post("/signup", cfg.RateLimiter.Handle, cfg.Admin.Signup)
	admin.Post("/signin", cfg.RateLimiter.Handle, cfg.Admin.Signin)
	admin.Post("/course", cfg.AdminAuth.Handle, cfg.Admin.CreateCourse)
	// bulk must be registered before the :id routes.
	admin.Get("/course/bulk", cfg.AdminAuth.Handle, cfg.Admin.ListCourses)
	admin.Put("/course/:id", cfg.AdminAuth.Handle, cfg.Admin.UpdateCourse)
	admin.Delete("/course/:id", cfg.AdminAuth.Handle, cfg.Admin.DeleteCourse)

	user := app.Group("/user")
	user.Post("/signup", cfg.RateLimiter.Handle, cfg.User.Signup)
	user.Post("/signin", cfg.RateLimiter.Handle, cfg.User.Signin)
	user.Get("/purchases", cfg.UserAuth.Handle, cfg.User.Purchases)

	course := app.Group("/course")
	course.Post("/purchase", cfg.UserAuth.Handle, cfg.Course.Purchase)
	course.Get("/preview", cfg.Course.Preview)
}
