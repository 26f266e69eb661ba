// handlers/frame.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"rps-frame-server/middleware"
	"rps-frame-server/monitor"
	"rps-frame-server/services"
)

var startedAt = time.Now()

// SetupFrameRoutes mounts the frame entry document, the operational
// endpoints and every signed callback target.
func SetupFrameRoutes(app *fiber.App, game *services.GameService, verifier services.ActionVerifier, mon *monitor.Monitor) {
	// 🔓 Public: entry document plus health and metrics.
	app.Get("/", game.Landing)
	app.Get("/health", healthHandler(game))
	if mon != nil {
		app.Get("/metrics", adaptor.HTTPHandler(mon.Handler()))
	}

	// 🔐 Signed callbacks: verification happens before any game logic.
	frames := app.Group("/frames", middleware.FrameAuth(verifier, game, mon))

	frames.Post("/home", game.HandleHome)
	frames.Post("/bot", game.HandleBotMove)
	frames.Post("/bot/result", game.HandleBotResult)
	frames.Post("/pvp", game.HandlePvP)
	frames.Post("/pvp/result", game.HandlePvPResult)
	frames.Post("/howto", game.HandleHowTo)
	frames.Post("/wallet", game.HandleWallet)
	frames.Post("/restart", game.HandleRestart)
}

func healthHandler(game *services.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "ok",
			"uptime":         time.Since(startedAt).String(),
			"active_matches": game.Store.Len(),
		})
	}
}
