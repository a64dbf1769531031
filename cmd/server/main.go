package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/tandemchess/tandemchess-backend/internal/config"
	"github.com/tandemchess/tandemchess-backend/internal/controller"
	"github.com/tandemchess/tandemchess-backend/internal/middleware"
	"github.com/tandemchess/tandemchess-backend/internal/obslog"
	"github.com/tandemchess/tandemchess-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	if err := obslog.InitFromEnv(); err != nil {
		log.Fatal(err)
	}
	defer obslog.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		obslog.L().Fatal("config_load", zap.Error(err))
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	roomManager := service.NewRoomManager(cfg)
	roomService := service.NewRoomService(roomManager)

	// Initialize controllers
	roomController := controller.NewRoomController(roomService)
	wsController := controller.NewWebSocketController(roomService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/room/:roomId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.AllowOrigins},
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	roomRoutes := api.Group("/room")
	roomRoutes.Post("/create", roomController.CreateRoom)
	roomRoutes.Post("/join/:roomId", roomController.JoinRoom)
	roomRoutes.Get("/:roomId", roomController.GetRoomState)

	obslog.L().Info("server_listen", zap.String("addr", cfg.ListenAddr))
	if err := app.Listen(cfg.ListenAddr); err != nil {
		obslog.L().Fatal("server_exit", zap.Error(err))
	}
}
