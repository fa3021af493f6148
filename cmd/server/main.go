package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/cache"
	"github.com/example/epkadmin/internal/config"
	"github.com/example/epkadmin/internal/database"
	"github.com/example/epkadmin/internal/logger"
	"github.com/example/epkadmin/internal/routes"
	"github.com/example/epkadmin/internal/services"
	"github.com/example/epkadmin/internal/store"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.JWTSecret == "" {
		zlog.Warn("JWT_SECRET is not set, logins will fail")
	}

	db, err := database.Connect(cfg.DatabaseURL, !cfg.IsProduction(), zlog)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var slugCache services.SlugCache = services.NopSlugCache{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.Connect(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SlugCacheTTL,
		})
		if err != nil {
			zlog.Warn("redis unavailable, slug cache disabled", zap.Error(err))
		} else {
			defer func() { _ = redisCache.Close() }()
			slugCache = redisCache
		}
	}

	var sender services.OTPSender
	if cfg.SMTPHost != "" {
		sender = services.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.OTPExpires)
	} else {
		zlog.Warn("SMTP_HOST is not set, OTP codes will be logged")
		sender = services.NewLogSender(zlog)
	}
	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat, zlog)

	authService := services.NewAuthService(store.NewAdminUsers(db), sender, telegram, services.AuthConfig{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenExpires,
		OTPTTL:   cfg.OTPExpires,
	}, zlog)
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPhone); err != nil {
		zlog.Error("bootstrap admin failed", zap.Error(err))
	}

	app := routes.NewApp(cfg, zlog)
	routes.Register(app, cfg, routes.Deps{
		Auth:  authService,
		Users: services.NewAppUserService(store.NewAppUsers(db), zlog),
		EPKs:  services.NewEPKService(store.NewEPKs(db), slugCache, telegram, zlog),
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zlog.Error("shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.Environment))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		zlog.Fatal("fiber.Listen error", zap.Error(err))
	}
}
