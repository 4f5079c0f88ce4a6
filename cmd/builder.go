package cmd

import (
	"fmt"
	"net/http"
	"os"

	"podmarket/api"
	apicatalog "podmarket/api/catalog"
	"podmarket/api/health"
	apiorders "podmarket/api/orders"
	apishops "podmarket/api/shops"
	catalogapp "podmarket/application/catalog"
	ordersapp "podmarket/application/orders"
	shopsapp "podmarket/application/shops"
	"podmarket/config"
	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence/mysql"
	"podmarket/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder wires the full dependency graph of the API server.
type AppBuilder struct {
	cfg *config.Config
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// Build creates the App instance
func (b *AppBuilder) Build() *App {
	// Initialize logger
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db := b.connectDatabase()

	// Repositories
	shopRepo := mysql.NewShopRepository(db)
	designRepo := mysql.NewDesignRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	statsRepo := mysql.NewShopStatsRepository(db)
	outboxRepo := mysql.NewOutboxRepository(db)

	// Event bus: subscriptions happen once at startup, then the registry is
	// sealed before the first request can publish.
	bus := shared.NewEventBus(outboxRepo)
	if err := RegisterEventHandlers(bus, statsRepo); err != nil {
		logger.Fatal("Failed to register event handlers", zap.Error(err))
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, designRepo, shopRepo, bus)
	designService := catalogapp.NewDesignService(designRepo, shopRepo)
	shopService := shopsapp.NewService(shopRepo, bus)
	orderService := ordersapp.NewService(orderRepo, productRepo, bus)

	// Controllers
	var healthDB interface{}
	if sqlDB, err := db.DB(); err == nil {
		healthDB = sqlDB
	}
	healthController := health.NewController(b.cfg, healthDB)
	catalogController := apicatalog.NewController(productService, designService)
	shopController := apishops.NewController(shopService)
	orderController := apiorders.NewController(orderService)

	router := api.NewRouter(b.cfg, healthController, catalogController, shopController, orderController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}
}

func (b *AppBuilder) connectDatabase() *gorm.DB {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(b.cfg).Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	// Auto migration in development environment
	if b.cfg.IsDevelopment() {
		if err := mysql.Migrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	return db
}
