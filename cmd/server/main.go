package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/admin"
	"github.com/LilGuiGui/awesome-catering/internal/cart"
	"github.com/LilGuiGui/awesome-catering/internal/catalog"
	"github.com/LilGuiGui/awesome-catering/internal/commons"
	"github.com/LilGuiGui/awesome-catering/internal/config"
	"github.com/LilGuiGui/awesome-catering/internal/infrastructure/logger"
	"github.com/LilGuiGui/awesome-catering/internal/infrastructure/mongodb"
	"github.com/LilGuiGui/awesome-catering/internal/infrastructure/mysql"
	"github.com/LilGuiGui/awesome-catering/internal/infrastructure/redisx"
	"github.com/LilGuiGui/awesome-catering/internal/order"
	"github.com/LilGuiGui/awesome-catering/internal/payment"
	"github.com/LilGuiGui/awesome-catering/internal/server"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	mongoClient, err := mongodb.NewConnection(cfg.Mongo)
	if err != nil {
		zapLogger.Fatal("connecting to mongodb", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			zapLogger.Error("disconnecting mongodb", zap.Error(err))
		}
	}()
	mongoDB := mongoClient.Database(cfg.Mongo.Database)
	zapLogger.Info("mongodb connected", zap.String("database", cfg.Mongo.Database))

	rdb, err := redisx.New(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("connecting to redis", zap.Error(err))
	}
	defer rdb.Close()
	zapLogger.Info("redis connected")

	store := session.NewStore(rdb, cfg.Session.TTL, zapLogger)
	gateway := payment.NewClient(cfg.Payment, zapLogger)

	catalogCtrl, catalogRepo := catalog.NewModule(db, zapLogger)
	cartCtrl := cart.NewModule(catalogRepo, cfg, zapLogger)
	orderCtrl := order.NewModule(mongoDB, gateway, cfg, zapLogger)
	adminCtrl := admin.NewModule(mongoDB, cfg, zapLogger)

	router := server.NewRouter(cfg, store, server.Controllers{
		Catalog: catalogCtrl,
		Cart:    cartCtrl,
		Order:   orderCtrl,
		Admin:   adminCtrl,
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
