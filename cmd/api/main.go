package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/forkful/chatbot-backend/config"
	"github.com/forkful/chatbot-backend/internal/api"
	"github.com/forkful/chatbot-backend/internal/database"
	"github.com/forkful/chatbot-backend/internal/pkg/logging"
	"github.com/forkful/chatbot-backend/internal/server"
	"github.com/forkful/chatbot-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	spoonacular := service.NewSpoonacularService(cfg, logger)
	enrich := service.NewEnrichmentService(spoonacular, logger)
	llm := service.NewLLMService(cfg, logger)
	synth := service.NewSynthesizerService(llm, logger)
	agent := service.NewAgentService(spoonacular, enrich, synth, logger)
	conversations := service.NewConversationService(db)

	chat := api.NewChatHandler(agent, conversations, logger)
	srv := server.New(cfg, chat, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
