package main

import (
	"context"
	"errors"
	"os/signal"
	"sitetrack"
	"sitetrack/internal/api/handler/endpoints"
	"sitetrack/internal/api/models"
	"sitetrack/internal/api/websocket"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	sitetrack.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if sitetrack.GetConfig().Mode == "dev" {
		if err := sitetrack.DB.AutoMigrate(
			&models.User{},
			&models.Job{},
			&models.Phase{},
			&models.Contractor{},
			&models.Assignment{},
			&models.CsvUpload{},
		); err != nil {
			sitetrack.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		sitetrack.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(sitetrack.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	hub := websocket.NewHub(sitetrack.Logger)
	go hub.Run()
	sitetrack.Logger.Info().Msg("WebSocket hub started")

	initAPI(router, hub)

	sitetrack.Logger.Debug().Msgf("Starting SiteTrack API on port %s", sitetrack.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		sitetrack.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, hub *websocket.Hub) {
	endpoints.AuthHandler(router)
	endpoints.JobHandler(router)
	endpoints.ContractorHandler(router)
	endpoints.CsvHandler(router, hub)
	endpoints.AssignmentHandler(router, hub)
	endpoints.WebSocketHandler(router, hub)
}
