package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/velizhask/KADA-Connect/internal/auth"
	"github.com/velizhask/KADA-Connect/internal/config"
	"github.com/velizhask/KADA-Connect/internal/database"
	"github.com/velizhask/KADA-Connect/internal/handler"
	middlewarepkg "github.com/velizhask/KADA-Connect/internal/middleware"
	"github.com/velizhask/KADA-Connect/internal/repository"
	"github.com/velizhask/KADA-Connect/internal/router"
	"github.com/velizhask/KADA-Connect/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)
	traineesRepo := repository.NewPGXTraineesRepository(pool)

	contactValidator := service.NewContactValidator(cfg.PhoneRegion)
	uploadValidator := service.NewUploadValidator(cfg.MaxImageBytes, cfg.MaxDocumentBytes)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	companiesService := service.NewCompaniesService(companiesRepo, contactValidator)
	traineesService := service.NewTraineesService(traineesRepo, contactValidator)

	proxyClient := &http.Client{Timeout: cfg.ProxyTimeout}

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserAdminHandler(userService),
		Companies:   handler.NewCompaniesHandler(companiesService, uploadValidator),
		Students:    handler.NewStudentsHandler(traineesService, uploadValidator),
		AdminUpload: handler.NewAdminUploadHandler(companiesService, traineesService),
		ImageProxy:  handler.NewImageProxyHandler(proxyClient, 0, cfg.ProxyImageHosts...),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
