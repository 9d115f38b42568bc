package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/intrackhq/intrack-backend/internal/config"
	"github.com/intrackhq/intrack-backend/internal/session"
)

// PageHandler serves the static HTML pages. Pages behind a login redirect to
// the signup page instead of returning 401; that is deliberate page-level UX.
type PageHandler struct {
	cfg      *config.Config
	sessions *session.Service
}

func NewPageHandler(cfg *config.Config, sessions *session.Service) *PageHandler {
	return &PageHandler{cfg: cfg, sessions: sessions}
}

// Public serves a page to anyone.
func (h *PageHandler) Public(file string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(h.cfg.PublicDir, file))
	}
}

// Protected serves a page only to logged-in callers.
func (h *PageHandler) Protected(file string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := h.sessions.Resolve(c.Cookies(h.cfg.SessionCookie)); err != nil {
			return c.Redirect("/signup", fiber.StatusSeeOther)
		}
		return c.SendFile(filepath.Join(h.cfg.PublicDir, file))
	}
}
