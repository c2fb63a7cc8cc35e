package app

import (
	"fmt"
	"strings"

	"bid-match/internal/delivery/http/handler"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/delivery/http/routes"
	"bid-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap assembles the fiber app from the container: global middleware,
// handlers, routes, and the websocket hub goroutine.
func Bootstrap(c *Container) (*App, error) {
	if c == nil {
		return nil, fmt.Errorf("nil container")
	}

	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	routes.Register(f, routes.Deps{
		Auth:       handler.NewAuthHandler(c.Auth),
		Match:      handler.NewMatchHandler(c.Matching, c.Groups),
		Validation: handler.NewValidationHandler(c.Validation),
		AuthMW:     middleware.NewAuthMiddleware(c.JWT),
		WS:         ws.NewHandler(c.Hub, c.Logger),
	})

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
