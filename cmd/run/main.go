package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/internal/fetcher"
	githubapi "github.com/thep200/github-word-miner/internal/github_api"
	"github.com/thep200/github-word-miner/internal/miner"
	"github.com/thep200/github-word-miner/internal/model"
	"github.com/thep200/github-word-miner/internal/tokenizer"
	"github.com/thep200/github-word-miner/pkg/db"
	"github.com/thep200/github-word-miner/pkg/kafka"
	"github.com/thep200/github-word-miner/pkg/log"
)

func main() {
	// Parse command line arguments, flag âm nghĩa là dùng giá trị trong config
	lowerBound := flag.Int("l", -1, "Lower bound of the range of stars")
	upperBound := flag.Int("u", -1, "Upper bound of the range of stars")
	step := flag.Int("s", -1, "Step of the range of stars")
	javaBackend := flag.String("j", "", "Java parser backend (regex, sitter)")
	persistMode := flag.String("m", "", "Persist mode (mysql, kafka)")
	flag.Parse()

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags ghi đè cấu hình miner
	if *lowerBound >= 0 {
		config.Miner.LowerBound = *lowerBound
	}
	if *upperBound >= 0 {
		config.Miner.UpperBound = *upperBound
	}
	if *step >= 0 {
		config.Miner.Step = *step
	}
	if *javaBackend != "" {
		config.Miner.JavaBackend = *javaBackend
	}
	if *persistMode != "" {
		config.Miner.PersistMode = *persistMode
	}

	// Setup logger
	logger, _ := log.NewZlLogger(config.App.Name)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup database
	mysql, _ := db.NewMysql(config)
	wordMd, _ := model.NewWord(config, logger, mysql)
	repoMd, _ := model.NewRepo(config, logger, mysql)

	// Migrate database
	if err := mysql.Migrate(wordMd, repoMd); err != nil {
		logger.Critical(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Tokenizer với backend Java được chọn
	tk, err := tokenizer.NewTokenizer(logger, config.Miner.JavaBackend)
	if err != nil {
		logger.Critical(ctx, "Failed to build tokenizer: %v", err)
		os.Exit(1)
	}

	// Chọn sink theo persist mode
	var wordSink miner.WordSink
	var repoStore miner.RepoStore = repoMd
	switch config.Miner.PersistMode {
	case "", "mysql":
		wordSink, _ = miner.NewDbWordSink(wordMd)
	case "kafka":
		wordProducer := kafka.NewProducer(config, logger, config.Kafka.Producer.TopicWords)
		repoProducer := kafka.NewProducer(config, logger, config.Kafka.Producer.TopicRepos)
		defer wordProducer.Close()
		defer repoProducer.Close()
		wordSink, _ = miner.NewKafkaWordSink(logger, wordProducer)
		repoStore, _ = miner.NewPublishingRepoStore(logger, repoMd, repoProducer)
	default:
		logger.Critical(ctx, "Unknown persist mode: %s", config.Miner.PersistMode)
		os.Exit(1)
	}

	// Wiring pipeline
	caller := githubapi.NewCaller(logger, config)
	gitFetcher, _ := fetcher.NewGitFetcher(logger, config)
	producer, _ := miner.NewMiner(logger, config, caller, gitFetcher, repoStore)
	aggregator, _ := miner.NewAggregator(logger, tk, wordSink, repoStore)
	orchestrator, _ := miner.NewOrchestrator(logger, config, producer, aggregator)

	// Dừng mềm khi nhận tín hiệu hệ thống
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info(ctx, "Received shutdown signal, finishing current partition...")
		cancel()
	}()

	logger.Info(ctx, "Starting GitHub word miner")
	if err := orchestrator.Run(ctx); err != nil {
		logger.Error(ctx, "Miner finished with error: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Successfully!")
}
