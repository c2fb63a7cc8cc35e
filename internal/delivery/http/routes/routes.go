package routes

import (
	"bid-match/internal/delivery/http/handler"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Auth       *handler.AuthHandler
	Match      *handler.MatchHandler
	Validation *handler.ValidationHandler
	AuthMW     *middleware.AuthMiddleware
	WS         *ws.Handler
}

// Register wires the public surface: login and health are open, everything
// under /api/v1 that touches matches requires a verified reviewer token, and
// /ws/progress streams batch progress.
func Register(app *fiber.App, d Deps) {
	if app == nil {
		return
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})

	v1 := app.Group("/api/v1")
	if d.Auth != nil {
		d.Auth.RegisterRoutes(v1)
	}

	protected := v1
	if d.AuthMW != nil {
		protected = v1.Group("", d.AuthMW.Middleware())
	}
	if d.Match != nil {
		d.Match.RegisterRoutes(protected)
	}
	if d.Validation != nil {
		d.Validation.RegisterRoutes(protected)
	}

	if d.WS != nil {
		app.Get("/ws/progress", d.WS.HandleProgressWS)
	}
}
