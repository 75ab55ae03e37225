package api

import (
	v1 "github.com/KALU56/E-Self/internal/api/v1"
	"github.com/KALU56/E-Self/internal/api/v1/middleware"
	"github.com/KALU56/E-Self/internal/config"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, cfg *config.Config) {
	protected := middleware.JWTProtected(cfg.Auth.JWTSecret)

	app.Get("/ping", handler.Pong)
	app.Post("/payment", protected, handler.CreatePayment)
	app.Post("/payment/webhook", handler.Webhook)
	app.Get("/payment/verify", handler.VerifyPayment)
	app.Get("/payment/history", protected, handler.GetHistory)
}
