// rps-frame-server/middleware/frame_auth.go
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"rps-frame-server/logger"
	"rps-frame-server/monitor"
	"rps-frame-server/services"
)

type contextKey string

const (
	// VerifiedActionContextKey is where the verified action is stashed
	// for handlers downstream.
	VerifiedActionContextKey contextKey = "verified_action"
)

// signedEnvelope is the only part of the callback body this service
// reads. The untrusted mirror fields next to trustedData are ignored.
type signedEnvelope struct {
	TrustedData struct {
		MessageBytes string `json:"messageBytes"`
	} `json:"trustedData"`
}

const rejectedMessage = "Could not verify that tap. Start over?"

// FrameAuth verifies the signed message on every frame callback before
// any game logic runs. Failures answer with the error screen and 401;
// nothing unverified ever reaches a handler.
//
// Usage:
//
//	app.Post("/frames/home", middleware.FrameAuth(verifier, game, mon), game.HandleHome)
func FrameAuth(verifier services.ActionVerifier, game *services.GameService, mon *monitor.Monitor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var envelope signedEnvelope
		if err := c.BodyParser(&envelope); err != nil || envelope.TrustedData.MessageBytes == "" {
			logger.Log.Warnw("❌ callback without signed message", "path", c.Path(), "ip", c.IP())
			return reject(c, game, mon)
		}

		start := time.Now()
		action, err := verifier.VerifyAction(c.UserContext(), envelope.TrustedData.MessageBytes)
		if mon != nil {
			mon.ObserveVerifyLatency(time.Since(start))
		}
		if err != nil {
			logger.Log.Warnw("❌ frame action rejected", "path", c.Path(), "error", err)
			return reject(c, game, mon)
		}

		logger.Log.Infow("🎮 frame action", "path", c.Path(), "fid", action.FID, "button", action.ButtonIndex)

		c.Locals(string(VerifiedActionContextKey), action)
		return c.Next()
	}
}

func reject(c *fiber.Ctx, game *services.GameService, mon *monitor.Monitor) error {
	if mon != nil {
		mon.IncVerificationFailures()
	}
	c.Type("html")
	return c.Status(fiber.StatusUnauthorized).
		SendString(services.RenderFrameHTML(game.ErrorScreen(rejectedMessage)))
}
