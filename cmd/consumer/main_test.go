package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thep200/github-word-miner/internal/model"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, format string, args ...interface{})     {}
func (nopLogger) Warn(ctx context.Context, format string, args ...interface{})     {}
func (nopLogger) Error(ctx context.Context, format string, args ...interface{})    {}
func (nopLogger) Debug(ctx context.Context, format string, args ...interface{})    {}
func (nopLogger) Critical(ctx context.Context, format string, args ...interface{}) {}

// batchRecorder ghi lại kích thước từng lô được áp dụng
type batchRecorder struct {
	mu    sync.Mutex
	sizes []int
	total int
}

func (r *batchRecorder) apply(ctx context.Context, deltas []model.WordDeltaMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sizes = append(r.sizes, len(deltas))
	r.total += len(deltas)
	return nil
}

func (r *batchRecorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}

func (r *batchRecorder) applied() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func delta(word string) model.WordDeltaMessage {
	return model.WordDeltaMessage{
		Repo:     "acme/foo",
		Language: model.LanguagePython,
		Counts:   map[string]int{word: 1},
	}
}

// Đủ kích thước thì flush ngay, phần dư chỉ flush khi dừng;
// không lô rỗng nào được áp dụng
func TestProcessBatchedDeltasFlushesBySize(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := make(chan model.WordDeltaMessage, 16)
	rec := &batchRecorder{}
	go processBatchedDeltas(ctx, messages, 3, time.Minute, nopLogger{}, rec.apply)

	for i := 0; i < 7; i++ {
		messages <- delta("load")
	}

	require.Eventually(t, func() bool { return rec.applied() == 6 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{3, 3}, rec.snapshot())

	// Chờ phần dư được nhận vào lô trước khi dừng
	require.Eventually(t, func() bool { return len(messages) == 0 }, time.Second, 10*time.Millisecond)
	cancel()
	require.Eventually(t, func() bool { return rec.applied() == 7 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{3, 3, 1}, rec.snapshot())
}

// Lô chưa đủ kích thước được flush khi hết timeout
func TestProcessBatchedDeltasFlushesOnTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := make(chan model.WordDeltaMessage, 16)
	messages <- delta("load")
	messages <- delta("config")

	rec := &batchRecorder{}
	go processBatchedDeltas(ctx, messages, 100, 30*time.Millisecond, nopLogger{}, rec.apply)

	require.Eventually(t, func() bool { return rec.applied() == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{2}, rec.snapshot())
}
