package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"rps-frame-server/config"
	"rps-frame-server/handlers"
	"rps-frame-server/logger"
	"rps-frame-server/monitor"
	"rps-frame-server/services"
	"rps-frame-server/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	logger.Init()
	defer logger.Log.Sync()

	cfg, err := config.Load(".")
	if err != nil {
		logger.Log.Fatalw("failed to load configuration", "error", err)
	}
	if cfg.Verifier.BaseURL == "" {
		logger.Log.Fatal("VERIFIER_BASE_URL not set; every callback would be rejected")
	}

	mon := monitor.NewMonitor("rps")
	store := services.NewMatchStore(mon)
	verifier := services.NewFrameVerifierClient(cfg.Verifier.BaseURL, cfg.Verifier.APIKey, cfg.Verifier.Timeout)
	game := services.NewGameService(store, cfg, mon)

	sweeper, err := workers.StartLobbySweeper(store, cfg.Match.TTL, cfg.Match.SweepInterval)
	if err != nil {
		logger.Log.Fatalw("failed to start lobby sweeper", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "rps-frame-server",
	})
	app.Use(cors.New())

	handlers.SetupFrameRoutes(app, game, verifier, mon)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(cfg.Server.Address); err != nil {
			logger.Log.Errorf("Server error: %v", err)
		}
	}()

	logger.Log.Infof("✅ Server running on %s", cfg.Server.Address)
	logger.Log.Infof("✅ Frame entry document at %s/", cfg.Server.PublicBaseURL)
	logger.Log.Infof("✅ Verifier at %s", cfg.Verifier.BaseURL)
	logger.Log.Infof("✅ Lobby sweeper running (every %s, TTL %s)", cfg.Match.SweepInterval, cfg.Match.TTL)

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Log.Errorf("Forced shutdown: %v", err)
	}
	if err := sweeper.Shutdown(); err != nil {
		logger.Log.Errorf("Sweeper shutdown: %v", err)
	}
}
