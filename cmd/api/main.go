package main

import (
	"context"
	"log"
	"os"
	"time"

	"thali/internal/approval"
	"thali/internal/assets"
	"thali/internal/auth"
	"thali/internal/config"
	"thali/internal/db"
	"thali/internal/importer"
	"thali/internal/items"
	"thali/internal/middleware"
	"thali/internal/staging"
	"thali/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres(cfg.DatabaseURL)
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background(), cfg)
	if err != nil {
		log.Fatal("R2 init failed:", err)
	}

	// ───────────────────────── AUTH ─────────────────────────
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo, cfg.SiteAdminEmail)
	authHandler := auth.NewHandler(authService, tokens)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CORE ─────────────────────────
	itemsRepo := items.NewPostgresRepository(pgDB)
	stagingStore := staging.NewStore()
	linker := assets.NewLinker(r2Client)

	importService := importer.NewService(stagingStore, itemsRepo, linker)
	importHandler := importer.NewHandler(importService)

	gate := approval.NewGate(itemsRepo, cfg.SiteAdminEmail)
	approvalHandler := approval.NewHandler(gate)

	catalogService := items.NewService(itemsRepo)
	catalogHandler := items.NewHandler(catalogService)

	// ───────────────────────── IMPORT ROUTES ─────────────────────────
	importGroup := r.Group("/import")
	importGroup.Use(
		middleware.AuthMiddleware(tokens),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		importGroup.POST("", importHandler.Import)
		importGroup.GET("/placeholders", importHandler.DownloadPlaceholders)
		importGroup.POST("/images", importHandler.UploadImages)
		importGroup.POST("/commit", importHandler.Commit)
	}

	// ───────────────────────── VERIFICATION ROUTES ─────────────────────────
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware(tokens))
	{
		verification.GET("/pending", approvalHandler.Pending)
		verification.POST("/approve", approvalHandler.Approve)
		verification.POST("/restaurants/:id/approve", approvalHandler.ApproveRestaurant)
		verification.POST("/menuitems/:id/approve", approvalHandler.ApproveMenuItem)
	}

	// ───────────────────────── PUBLIC CATALOG ─────────────────────────
	r.GET("/catalog", catalogHandler.Catalog)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Printf("API running at http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
