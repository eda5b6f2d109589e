package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-registry-api/internal/config"
	"github.com/BuzzLyutic/task-registry-api/internal/handler"
	"github.com/BuzzLyutic/task-registry-api/internal/logging"
	"github.com/BuzzLyutic/task-registry-api/internal/metrics"
	"github.com/BuzzLyutic/task-registry-api/internal/repo"
	"github.com/BuzzLyutic/task-registry-api/internal/router"
	"github.com/BuzzLyutic/task-registry-api/internal/service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load(os.Getenv("TASKS_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Подключаем логгер
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	taskRepo := repo.NewTaskRepo() // Хранилище живет только в памяти процесса
	taskService := service.NewTaskService(taskRepo)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	deps := router.Deps{
		Tasks:  taskHandler,
		Logger: logger,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New(cfg.Metrics.Namespace, taskService)
		deps.MetricsPath = cfg.Metrics.Path
	}

	srv := http.Server{ // Создаем сервер
		Addr:         cfg.Server.Addr(),
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully")
}
