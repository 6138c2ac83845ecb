// Command roomvision-server boots the HTTP detection API. Per spec §5,
// model loading is the only expensive initialization and happens eagerly
// at boot; a worker with a failed model load exits rather than serving
// traffic. Graceful shutdown follows the teacher's cmd/arx/main.go
// startAPIServer signal-handling idiom.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arxos/roomvision/internal/config"
	"github.com/arxos/roomvision/internal/httpapi"
	"github.com/arxos/roomvision/pkg/detection"
	"github.com/arxos/roomvision/pkg/roomdetect"
	"github.com/arxos/roomvision/pkg/walldetect"
)

func main() {
	configFile := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	wallModel, err := walldetect.Load(cfg.Models.WallModelPath)
	if err != nil {
		logger.Fatal("wall detector failed to load, refusing to serve traffic",
			zap.Error(err), zap.String("model_path", cfg.Models.WallModelPath))
	}

	roomModel, err := roomdetect.Load(cfg.Models.RoomModelPath)
	if err != nil {
		logger.Fatal("direct room detector failed to load, refusing to serve traffic",
			zap.Error(err), zap.String("model_path", cfg.Models.RoomModelPath))
	}

	router := detection.NewRouter(wallModel, roomModel)
	handler := httpapi.NewRouter(cfg, router, wallModel, logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("roomvision-server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
