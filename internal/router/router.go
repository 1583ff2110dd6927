// Package router assembles the fiber application: middleware, handlers and
// the websocket change feed.
package router

import (
	"go-inventory-pos/internal/handler"
	"go-inventory-pos/internal/middleware"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/service"
	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/jwt"
	"go-inventory-pos/pkg/webhook"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB           *gorm.DB
	Log          *zap.Logger
	Hub          *ws.Hub
	Tokens       *jwt.Manager
	Verifier     *webhook.Verifier
	AllowOrigins string
	RequestLog   bool
}

// NewApp wires repositories, services and handlers onto a new fiber app
func NewApp(deps Deps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName: "Inventory POS v1.0",
	})

	// Middleware
	if deps.RequestLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	corsConfig := cors.Config{}
	if deps.AllowOrigins != "" {
		corsConfig.AllowOrigins = deps.AllowOrigins
	}
	app.Use(cors.New(corsConfig))

	// Dependency Injection (Wiring Layers)
	var events service.EventPublisher
	if deps.Hub != nil {
		events = deps.Hub
	}

	productRepo := repository.NewProductRepo(deps.DB)
	customerRepo := repository.NewCustomerRepo(deps.DB)
	saleRepo := repository.NewSaleRepo(deps.DB)
	userRepo := repository.NewUserRepo(deps.DB)

	productService := service.NewProductService(productRepo, events, log)
	saleService := service.NewSaleService(deps.DB, productRepo, customerRepo, saleRepo, events, log)
	dashService := service.NewDashboardService(productRepo, saleRepo)
	userService := service.NewUserService(userRepo, log)

	productHandler := handler.NewProductHandler(productService, log)
	saleHandler := handler.NewSaleHandler(saleService, log)
	dashHandler := handler.NewDashboardHandler(dashService, log)
	userHandler := handler.NewUserHandler(userService, log)
	webhookHandler := handler.NewWebhookHandler(deps.Verifier, userService, log)

	requireAuth := middleware.RequireAuth(deps.Tokens, userRepo, log)

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Post("/webhook/identity", webhookHandler.Identity)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Get("/me", userHandler.Me)
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)

	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products/add", productHandler.AddProduct)
	protected.Post("/products/update", productHandler.UpdateProduct)
	protected.Delete("/products/delete", productHandler.DeleteProduct)

	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sale/add", saleHandler.CreateSale)
	protected.Post("/sale/delete", saleHandler.DeleteSale)
	protected.Patch("/sale/update", saleHandler.UpdatePayment)

	// WebSocket Route
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", requireAuth, websocket.New(feed(deps.Hub)))
	}

	return app
}

// feed subscribes the socket to its owner's events until the client goes away
func feed(hub *ws.Hub) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		ownerID, _ := c.Locals("user_id").(string)
		sub := ws.Subscription{OwnerID: ownerID, Conn: c}

		if !hub.Subscribe(sub) {
			return
		}
		defer hub.Unsubscribe(sub)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}
}
