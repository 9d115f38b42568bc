package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/intrackhq/intrack-backend/internal/config"
	"github.com/intrackhq/intrack-backend/internal/handlers"
	"github.com/intrackhq/intrack-backend/internal/middleware"
	"github.com/intrackhq/intrack-backend/internal/session"
)

// Handlers bundles everything Setup wires into the app.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Job          *handlers.JobHandler
	Application  *handlers.ApplicationHandler
	Notification *handlers.NotificationHandler
	Note         *handlers.NoteHandler
	Chat         *handlers.ChatHandler
	Page         *handlers.PageHandler
	Health       *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, sessions *session.Service, h Handlers) {
	// Both run on every identity-dependent route: cookie signature first,
	// then the server-side session row.
	verifyCookie := middleware.SessionCookie(cfg)
	loadSession := middleware.SessionLoader(sessions)

	// Stricter limit on the credential endpoints: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	// Pages
	app.Get("/", h.Page.Public("index.html"))
	app.Get("/signup", h.Page.Public("signup.html"))
	app.Get("/login", h.Page.Public("login.html"))
	app.Get("/jobs", h.Page.Public("jobs.html"))
	app.Get("/notes", h.Page.Public("notes.html"))
	app.Get("/profile", h.Page.Protected("profile.html"))
	app.Get("/applied", h.Page.Protected("applied.html"))
	app.Get("/interview", h.Page.Protected("interview.html"))
	app.Get("/offer", h.Page.Protected("offer.html"))
	app.Get("/rejected", h.Page.Protected("rejected.html"))
	app.Get("/logout", h.Auth.Logout)

	// Signup and login form targets
	app.Post("/post", authLimiter, h.Auth.Register)
	app.Post("/login", authLimiter, h.Auth.Login)

	// Public notes scratchpad
	app.Post("/add-note", h.Note.Add)
	app.Get("/get-notes", h.Note.Get)

	// Chat assistant
	app.Post("/chat", h.Chat.Chat)

	// API: 60 req/min per IP
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	api.Get("/profile", verifyCookie, loadSession, h.Auth.GetProfile)
	api.Put("/profile/update", verifyCookie, loadSession, h.Auth.UpdateProfile)
	api.Delete("/profile/delete", verifyCookie, loadSession, h.Auth.DeleteAccount)

	api.Get("/jobs/search", h.Job.Search)
	api.Post("/jobs/create", h.Job.Create)
	api.Get("/jobs/external", h.Job.External)
	api.Post("/jobs/apply/:jobId", verifyCookie, loadSession, h.Application.Apply)

	api.Get("/applications", verifyCookie, loadSession, h.Application.List)

	api.Get("/notifications", verifyCookie, loadSession, h.Notification.List)
	api.Post("/notifications/read/:id", verifyCookie, loadSession, h.Notification.MarkRead)
}
