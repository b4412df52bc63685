package main

import (
	"net/http"

	_ "carlog/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"carlog/internal/auth"
	"carlog/internal/cache"
	"carlog/internal/config"
	"carlog/internal/db"
	"carlog/internal/handler"
	"carlog/internal/model"
	"carlog/internal/repository"
	"carlog/internal/router"
	"carlog/internal/service"
	"carlog/internal/validation"
)

// @title Vehicle History API
// @version 1.0
// @description Session-authenticated backend for user accounts and per-vehicle maintenance and accident history.
// @host localhost:8080
// @schemes http
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	if !cfg.IsProduction() {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vehicle{},
		&model.ServiceRecord{},
		&model.AccidentHistory{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessionStore := auth.NewRedisSessionStore(cacheClient, cfg.SessionTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	serviceRecordRepo := repository.NewServiceRecordRepository(gormDB)
	accidentRepo := repository.NewAccidentHistoryRepository(gormDB)

	// Initialize services
	gateway := validation.NewGateway()
	guard := service.NewOwnershipGuard(vehicleRepo)
	authService := service.NewAuthService(userRepo, sessionStore, gateway)
	historyService := service.NewHistoryService(guard, gateway, serviceRecordRepo, accidentRepo, logger)

	// Initialize handlers
	debug := !cfg.IsProduction()
	authHandler := handler.NewAuthHandler(authService, logger, debug, cfg.SessionTTL)
	historyHandler := handler.NewHistoryHandler(historyService, logger, debug)

	// Register routes
	router.Register(e, sessionStore, authHandler, historyHandler)

	addr := ":" + cfg.ServerPort
	logger.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
