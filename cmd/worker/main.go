package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"foodgram-go/internal/config"
	"foodgram-go/internal/indexer"
	"foodgram-go/internal/infra/database"
	infraES "foodgram-go/internal/infra/elasticsearch"
	infraKafka "foodgram-go/internal/infra/kafka"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 索引服务离开 ES 无法工作，这里不做降级
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	recipeRepo := repository.NewRecipeRepository(database.Get())
	ix := indexer.New(recipeRepo)

	// 启动时全量重建一次，修复停机期间漏掉的事件
	success, failed, err := ix.ReindexAll()
	if err != nil {
		logger.Error("Full reindex failed", zap.Error(err))
	} else {
		logger.Info("Full reindex completed",
			zap.Int("success", success),
			zap.Int("failed", failed),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	eventTopic := cfg.Kafka.Topics["recipe_events"]
	groupID := "foodgram-go-indexer"

	logger.Info("Index worker started",
		zap.String("topic", eventTopic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartRecipeEventConsumer(ctx, cfg.Kafka.Brokers, eventTopic, groupID, ix.HandleEvent)
}
