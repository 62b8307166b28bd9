package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"tweetapp/auth"
	"tweetapp/config"
	"tweetapp/database"
	"tweetapp/handlers"
	"tweetapp/logger"
	"tweetapp/repositories"
	"tweetapp/routes"
	"tweetapp/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger.Init(cfg.App.LogLevel)

	db, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	likeRepo := repositories.NewLikeRepository(db)

	userSvc := services.NewUserService(userRepo)
	socialSvc := services.NewSocialService(followRepo)
	timelineSvc := services.NewTimelineService(userRepo, followRepo, messageRepo, likeRepo)

	sessions := auth.NewSessions(cfg.Session.Secret, cfg.Session.MaxAge)

	userHandler := handlers.NewUserHandler(sessions, userSvc, socialSvc, userRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo, likeRepo, userRepo)
	timelineHandler := handlers.NewTimelineHandler(timelineSvc)

	router := routes.SetupRoutes(sessions, userRepo, userHandler, messageHandler, timelineHandler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logrus.Infof("Server running on port %s", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("shutdown: %v", err)
	}
}
