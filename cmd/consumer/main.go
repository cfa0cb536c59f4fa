package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/internal/model"
	"github.com/thep200/github-word-miner/pkg/db"
	"github.com/thep200/github-word-miner/pkg/kafka"
	"github.com/thep200/github-word-miner/pkg/log"
)

func main() {
	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, _ := log.NewZlLogger(config.App.Name + "-consumer")

	// Setup database
	mysql, _ := db.NewMysql(config)
	wordModel, _ := model.NewWord(config, logger, mysql)
	repoModel, _ := model.NewRepo(config, logger, mysql)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mysql.Migrate(wordModel, repoModel); err != nil {
		logger.Critical(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	startWordConsumer(ctx, config, logger, wordModel)
	startRepoConsumer(ctx, config, logger, repoModel)

	// Wait for termination signal
	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}

// startWordConsumer tiêu thụ các word delta và áp dụng theo lô vào MySQL
func startWordConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, wordModel *model.Word) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicWords, "word-consumer-group")

	batchSize := 100
	batchTimeout := 5 * time.Second

	// Channel to collect messages for batch processing
	messages := make(chan model.WordDeltaMessage, batchSize*2)

	// Batch processor
	go processBatchedDeltas(ctx, messages, batchSize, batchTimeout, logger, wordModel.ApplyDeltas)

	consumer.RegisterHandler("word_delta", func(data []byte) error {
		var delta model.WordDeltaMessage
		if err := json.Unmarshal(data, &delta); err != nil {
			return fmt.Errorf("failed to unmarshal word delta: %w", err)
		}

		select {
		case messages <- delta:
			// Message added to batch
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Word consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Word delta consumer started successfully")
}

// processBatchedDeltas gom delta thành lô theo kích thước hoặc timeout
func processBatchedDeltas(ctx context.Context, messages <-chan model.WordDeltaMessage, batchSize int,
	batchTimeout time.Duration, logger log.Logger, apply func(context.Context, []model.WordDeltaMessage) error) {

	var batch []model.WordDeltaMessage
	timer := time.NewTimer(batchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		logger.Info(ctx, "Applying batch of %d word deltas", len(batch))
		if err := apply(ctx, batch); err != nil {
			logger.Error(ctx, "Failed to apply word deltas: %v", err)
		}
		batch = nil
	}

	// Timer có thể đã nổ mà chưa được đọc, phải rút hết kênh
	// trước khi Reset để tránh một lần nổ sớm ngay sau đó
	resetTimer := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(batchTimeout)
	}

	for {
		select {
		case <-ctx.Done():
			// Process remaining messages before exiting
			flush()
			return

		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				resetTimer()
			}

		case <-timer.C:
			flush()
			timer.Reset(batchTimeout)
		}
	}
}

// startRepoConsumer tiêu thụ sự kiện repo_mined và upsert bản ghi repository.
// Upsert là idempotent nên việc nhận lại sự kiện đã xử lý không gây hại
func startRepoConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, repoModel *model.Repo) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicRepos, "repo-consumer-group")

	consumer.RegisterHandler("repo_mined", func(data []byte) error {
		var mined model.RepoMinedMessage
		if err := json.Unmarshal(data, &mined); err != nil {
			return fmt.Errorf("failed to unmarshal repo_mined message: %w", err)
		}

		if err := repoModel.MarkMined(ctx, mined.FullName, mined.Language, mined.Words); err != nil {
			return fmt.Errorf("failed to record repository: %w", err)
		}

		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Repo consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Repository consumer started successfully")
}
