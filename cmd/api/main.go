package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/chentesbarber/booking-api/internal/config"
	dbpkg "github.com/chentesbarber/booking-api/internal/db"
	"github.com/chentesbarber/booking-api/internal/handlers"
	"github.com/chentesbarber/booking-api/internal/jobs"
	"github.com/chentesbarber/booking-api/internal/metrics"
	"github.com/chentesbarber/booking-api/internal/middleware"
	"github.com/chentesbarber/booking-api/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	handlers.EnsureAdminUser(db, cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	purgeUC := routes.RegisterRoutes(r, db, cfg)

	scheduler := jobs.Start(purgeUC)
	defer scheduler.Stop()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
