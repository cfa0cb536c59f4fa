// Aggregator là consumer của pipeline: lấy work item từ hàng đợi,
// chạy tokenizer, gộp tần suất vào store và xóa clone cục bộ.
// Worker kết thúc khi hàng đợi bị Miner đóng

package miner

import (
	"context"
	"os"

	"github.com/thep200/github-word-miner/pkg/log"
)

// Counter là collaborator đếm tần suất từ của một repository
type Counter interface {
	Counts(repoPath, language string) (map[string]int, error)
}

// WordSink nhận tần suất từ của một repository đã xử lý xong.
// Hiện có sink ghi thẳng MySQL và sink publish qua Kafka
type WordSink interface {
	Flush(ctx context.Context, fullName, language string, counts map[string]int) error
}

type Aggregator struct {
	Logger    log.Logger
	Tokenizer Counter
	Words     WordSink
	Repos     RepoStore
}

func NewAggregator(logger log.Logger, tokenizer Counter, words WordSink, repos RepoStore) (*Aggregator, error) {
	return &Aggregator{
		Logger:    logger,
		Tokenizer: tokenizer,
		Words:     words,
		Repos:     repos,
	}, nil
}

// Run là vòng lặp của một worker, chạy tới khi hàng đợi bị đóng
func (a *Aggregator) Run(ctx context.Context, workerID int, queue <-chan WorkItem) {
	a.Logger.Info(ctx, "Consumer %d: Running", workerID)
	for item := range queue {
		a.process(ctx, workerID, item)
	}
	a.Logger.Info(ctx, "Consumer %d: Stopped", workerID)
}

// process xử lý một work item. Clone cục bộ luôn được xóa trong defer,
// kể cả khi tokenizer hoặc persistence lỗi
func (a *Aggregator) process(ctx context.Context, workerID int, item WorkItem) {
	defer func() {
		if err := os.RemoveAll(item.Path); err != nil {
			a.Logger.Error(ctx, "Consumer %d: failed to delete %s: %v", workerID, item.Path, err)
		}
	}()

	counts, err := a.Tokenizer.Counts(item.Path, item.Language)
	if err != nil {
		// Lỗi parse là chung cuộc: repo vẫn được đánh dấu đã xử lý
		// để không bị thử lại ở các lượt sau
		a.Logger.Error(ctx, "Consumer %d: failed to tokenize %s: %v", workerID, item.FullName, err)
		counts = nil
	}

	hasWords := len(counts) > 0
	if hasWords {
		if err := a.Words.Flush(ctx, item.FullName, item.Language, counts); err != nil {
			a.Logger.Error(ctx, "Consumer %d: failed to persist words of %s: %v", workerID, item.FullName, err)
		}
	}

	if err := a.Repos.MarkMined(ctx, item.FullName, item.Language, hasWords); err != nil {
		a.Logger.Error(ctx, "Consumer %d: failed to record %s: %v", workerID, item.FullName, err)
	}

	if !hasWords {
		a.Logger.Info(ctx, "Consumer %d is done with %s (no usable identifiers)", workerID, item.Path)
	}
}
