package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-products-ms/internal/classifier"
	"go-products-ms/internal/config"
	"go-products-ms/internal/handler"
	"go-products-ms/internal/model"
	"go-products-ms/internal/repository"
	"go-products-ms/internal/service"
	"go-products-ms/pkg/bus"
	"go-products-ms/pkg/database"
	"go-products-ms/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.Named("products-ms")
	defer func() { _ = zlog.Sync() }()

	// 2. Setup Database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Allergen{},
		&model.Product{},
		&model.ProductAllergen{},
	); err != nil {
		zlog.Fatal("auto migration failed", zap.Error(err))
	}
	zlog.Info("database connection established")

	// 3. Seed reference data (8 categories, 14 EU allergens)
	seedCatalogDefaults(db, zlog)

	// 4. Classifier (disabled without an API key)
	var clf classifier.Classifier
	if cfg.ClassifierEnabled() {
		clf = classifier.NewOpenAI(classifier.Options{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}, zlog.Named("classifier"))
		zlog.Info("OpenAI classifier initialized", zap.String("model", cfg.OpenAIModel))
	} else {
		clf = classifier.Disabled{}
		zlog.Warn("OPENAI_API_KEY not provided, allergen and category suggestions disabled")
	}

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	allergenRepo := repository.NewAllergenRepo(db)

	productService := service.NewProductService(productRepo, categoryRepo, allergenRepo, clf, zlog.Named("products"))
	categoryService := service.NewCategoryService(categoryRepo)
	allergenService := service.NewAllergenService(allergenRepo)

	productHandler := handler.NewProductHandler(productService, zlog.Named("products"))
	categoryHandler := handler.NewCategoryHandler(categoryService, zlog.Named("categories"))
	allergenHandler := handler.NewAllergenHandler(allergenService, zlog.Named("allergens"))

	// 6. NATS transport
	conn, err := bus.Connect(cfg.NatsURL)
	if err != nil {
		zlog.Fatal("failed to connect to NATS", zap.Error(err))
	}
	if err := productHandler.Register(conn); err != nil {
		zlog.Fatal("failed to register product subjects", zap.Error(err))
	}
	if err := categoryHandler.Register(conn); err != nil {
		zlog.Fatal("failed to register category subjects", zap.Error(err))
	}
	if err := allergenHandler.Register(conn); err != nil {
		zlog.Fatal("failed to register allergen subjects", zap.Error(err))
	}
	zlog.Info("listening on NATS", zap.String("url", cfg.NatsURL))

	// 7. Ops HTTP server (orchestrator probes cannot speak NATS)
	app := fiber.New(fiber.Config{
		AppName:               "Products MS v1.0",
		DisableStartupMessage: true,
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil || !conn.IsConnected() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			zlog.Fatal("ops server stopped", zap.Error(err))
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down...")
	if err := conn.Drain(); err != nil {
		zlog.Warn("NATS drain failed", zap.Error(err))
	}
	if err := app.Shutdown(); err != nil {
		zlog.Warn("ops server shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zlog.Info("server exited")
}

// seedCatalogDefaults creates the fixed categories and the 14 EU regulatory
// allergens if they don't exist yet.
func seedCatalogDefaults(db *gorm.DB, zlog *zap.Logger) {
	categories := []model.Category{
		{Name: "Carnes", Description: ptr("Carnes y productos cárnicos")},
		{Name: "Verduras", Description: ptr("Verduras y hortalizas")},
		{Name: "Pescados y Mariscos", Description: ptr("Pescados frescos y mariscos")},
		{Name: "Lácteos", Description: ptr("Productos lácteos")},
		{Name: "Aseo", Description: ptr("Productos de limpieza y aseo")},
		{Name: "Bebidas", Description: ptr("Bebidas alcohólicas y no alcohólicas")},
		{Name: "Panadería", Description: ptr("Pan y productos de panadería")},
		{Name: "Conservas", Description: ptr("Productos en conserva")},
	}
	for i := range categories {
		if err := db.Where("name = ?", categories[i].Name).FirstOrCreate(&categories[i]).Error; err != nil {
			zlog.Warn("failed to seed category", zap.String("name", categories[i].Name), zap.Error(err))
		}
	}

	allergens := []model.Allergen{
		{Name: "Gluten", Code: "GLU", Description: ptr("Cereales que contienen gluten")},
		{Name: "Crustáceos", Code: "CRU", Description: ptr("Crustáceos y productos derivados")},
		{Name: "Huevos", Code: "EGG", Description: ptr("Huevos y productos derivados")},
		{Name: "Pescado", Code: "FISH", Description: ptr("Pescado y productos derivados")},
		{Name: "Cacahuetes", Code: "PEA", Description: ptr("Cacahuetes y productos derivados")},
		{Name: "Soja", Code: "SOY", Description: ptr("Soja y productos derivados")},
		{Name: "Lácteos", Code: "MILK", Description: ptr("Leche y productos derivados (incluida lactosa)")},
		{Name: "Frutos de cáscara", Code: "NUTS", Description: ptr("Frutos de cáscara (almendras, avellanas, nueces, etc.)")},
		{Name: "Apio", Code: "CEL", Description: ptr("Apio y productos derivados")},
		{Name: "Mostaza", Code: "MUS", Description: ptr("Mostaza y productos derivados")},
		{Name: "Sésamo", Code: "SES", Description: ptr("Granos de sésamo y productos derivados")},
		{Name: "Sulfitos", Code: "SUL", Description: ptr("Dióxido de azufre y sulfitos")},
		{Name: "Altramuces", Code: "LUP", Description: ptr("Altramuces y productos derivados")},
		{Name: "Moluscos", Code: "MOL", Description: ptr("Moluscos y productos derivados")},
	}
	for i := range allergens {
		if err := db.Where("code = ?", allergens[i].Code).FirstOrCreate(&allergens[i]).Error; err != nil {
			zlog.Warn("failed to seed allergen", zap.String("code", allergens[i].Code), zap.Error(err))
		}
	}

	zlog.Info("catalog reference data seeded",
		zap.Int("categories", len(categories)),
		zap.Int("allergens", len(allergens)))
}

func ptr(s string) *string {
	return &s
}
