package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/restopos/inventory-service/config"
	"github.com/restopos/inventory-service/internal/api/routes"
	"github.com/restopos/inventory-service/internal/cache"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	auditH "github.com/restopos/inventory-service/internal/audit/handler"
	auditRepoPkg "github.com/restopos/inventory-service/internal/audit/repository"

	stockH "github.com/restopos/inventory-service/internal/stock/handler"
	stockRepoPkg "github.com/restopos/inventory-service/internal/stock/repository"
	stockUCPkg "github.com/restopos/inventory-service/internal/stock/usecase"

	liquorH "github.com/restopos/inventory-service/internal/liquor/handler"
	liquorRepoPkg "github.com/restopos/inventory-service/internal/liquor/repository"
	liquorUCPkg "github.com/restopos/inventory-service/internal/liquor/usecase"

	orderH "github.com/restopos/inventory-service/internal/order/handler"
	orderListenerPkg "github.com/restopos/inventory-service/internal/order/listener"
	orderUCPkg "github.com/restopos/inventory-service/internal/order/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}

	appLogger, err := logger.New(logConfig)
	if err != nil {
		panic(err)
	}
	defer appLogger.Sync()

	// 3. Connect to Database (runs embedded migrations)
	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	txManager := database.NewTxManager(db)

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Repositories
	auditRepo := auditRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	liquorRepo := liquorRepoPkg.NewPGRepository(db)

	// 6. Initialize UseCases
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, auditRepo, txManager, appLogger)
	liquorUC := liquorUCPkg.NewLiquorUseCase(liquorRepo, auditRepo, txManager, appLogger)

	orderCfg := orderUCPkg.DefaultConfig()
	if ttl := cfg.Order.IdempotencyTTL(); ttl > 0 {
		orderCfg.IdempotencyTTL = ttl
	}
	orderUC := orderUCPkg.NewCoordinator(txManager, stockUC, liquorUC, redisClient, orderCfg, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6.5 Start background workers
	if cfg.Sweep.Enabled {
		sweeper := liquorUCPkg.NewSweeper(liquorUC, redisClient, cfg.Sweep.Interval(), appLogger)
		go sweeper.Run(ctx)
	}

	if cfg.Kafka.Enabled {
		kafkaReader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaReader.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		orderListener := orderListenerPkg.NewOrderListener(kafkaReader, orderUC, appLogger)
		go orderListener.Start(ctx)
	}

	// 7. Initialize Handlers and Router
	handlers := routes.Handlers{
		Stock:  stockH.NewStockHandler(stockUC, appLogger),
		Liquor: liquorH.NewLiquorHandler(liquorUC, appLogger),
		Order:  orderH.NewOrderHandler(orderUC, appLogger),
		Audit:  auditH.NewAuditHandler(auditRepo, appLogger),
	}
	router := routes.SetupRouter(cfg.Server.AppEnv, handlers, appLogger)

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
