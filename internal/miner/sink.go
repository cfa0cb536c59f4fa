package miner

import (
	"context"

	"github.com/thep200/github-word-miner/internal/model"
	"github.com/thep200/github-word-miner/pkg/kafka"
	"github.com/thep200/github-word-miner/pkg/log"
)

// DbWordSink ghi tần suất thẳng vào MySQL, một transaction cho mỗi repo
type DbWordSink struct {
	WordMd *model.Word
}

func NewDbWordSink(wordMd *model.Word) (*DbWordSink, error) {
	return &DbWordSink{WordMd: wordMd}, nil
}

func (s *DbWordSink) Flush(ctx context.Context, fullName, language string, counts map[string]int) error {
	return s.WordMd.MergeCounts(ctx, language, counts)
}

// KafkaWordSink publish tần suất dưới dạng delta message, consumer riêng
// sẽ áp dụng chúng vào MySQL theo lô
type KafkaWordSink struct {
	Logger   log.Logger
	Producer *kafka.Producer
}

func NewKafkaWordSink(logger log.Logger, producer *kafka.Producer) (*KafkaWordSink, error) {
	return &KafkaWordSink{
		Logger:   logger,
		Producer: producer,
	}, nil
}

func (s *KafkaWordSink) Flush(ctx context.Context, fullName, language string, counts map[string]int) error {
	message := model.WordDeltaMessage{
		Repo:     fullName,
		Language: language,
		Counts:   counts,
	}
	return s.Producer.Publish(ctx, "word_delta", message)
}

// PublishingRepoStore bọc một RepoStore và phát thêm sự kiện repo_mined
// lên Kafka sau mỗi lần đánh dấu. Bản ghi dedup vẫn được ghi trực tiếp
// vì Miner cần đọc lại ngay trong cùng lượt chạy
type PublishingRepoStore struct {
	Logger   log.Logger
	Inner    RepoStore
	Producer *kafka.Producer
}

func NewPublishingRepoStore(logger log.Logger, inner RepoStore, producer *kafka.Producer) (*PublishingRepoStore, error) {
	return &PublishingRepoStore{
		Logger:   logger,
		Inner:    inner,
		Producer: producer,
	}, nil
}

func (s *PublishingRepoStore) Exists(ctx context.Context, id string) (bool, error) {
	return s.Inner.Exists(ctx, id)
}

func (s *PublishingRepoStore) MarkMined(ctx context.Context, fullName, language string, words bool) error {
	if err := s.Inner.MarkMined(ctx, fullName, language, words); err != nil {
		return err
	}

	message := model.RepoMinedMessage{
		FullName: fullName,
		Language: language,
		Words:    words,
	}
	if err := s.Producer.Publish(ctx, "repo_mined", message); err != nil {
		// Sự kiện chỉ mang tính thông báo, không làm hỏng việc ghi bản ghi
		s.Logger.Warn(ctx, "Failed to publish repo_mined event for %s: %v", fullName, err)
	}
	return nil
}
