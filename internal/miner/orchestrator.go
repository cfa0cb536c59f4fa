// Orchestrator chạy tuần tự các partition: mỗi partition được nối dây
// với một hàng đợi mới, một Miner và một pool Aggregator cố định.
// Không partition nào được phép làm chết cả lượt chạy

package miner

import (
	"context"
	"os"
	"sync"

	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/pkg/log"
)

type Orchestrator struct {
	Logger     log.Logger
	Config     *cfg.Config
	Miner      *Miner
	Aggregator *Aggregator
}

func NewOrchestrator(logger log.Logger, config *cfg.Config, m *Miner, a *Aggregator) (*Orchestrator, error) {
	return &Orchestrator{
		Logger:     logger,
		Config:     config,
		Miner:      m,
		Aggregator: a,
	}, nil
}

// Run duyệt toàn bộ partition từ nhiều sao nhất tới ít nhất
func (o *Orchestrator) Run(ctx context.Context) error {
	partitions, err := Partitions(o.Config.Miner.LowerBound, o.Config.Miner.UpperBound, o.Config.Miner.Step)
	if err != nil {
		return err
	}

	o.Logger.Info(ctx, "Starting miner over %d partitions", len(partitions))
	for _, partition := range partitions {
		select {
		case <-ctx.Done():
			o.Logger.Info(ctx, "Miner stopped: %v", ctx.Err())
			return ctx.Err()
		default:
		}

		o.runPartition(ctx, partition)

		// Dọn thư mục staging giữa các partition, kể cả khi partition lỗi
		if err := os.RemoveAll(o.Config.Miner.StagingDir); err != nil {
			o.Logger.Error(ctx, "Failed to clear staging dir: %v", err)
		}
	}

	o.Logger.Info(ctx, "All partitions exhausted")
	return nil
}

// runPartition nối dây một lượt mine: hàng đợi mới, pool aggregator
// và một miner. Panic trong partition chỉ được log rồi bỏ qua
func (o *Orchestrator) runPartition(ctx context.Context, partition Partition) {
	defer func() {
		if r := recover(); r != nil {
			o.Logger.Error(ctx, "Recovered from panic in partition %s: %v", partition.Clause(), r)
		}
	}()

	o.Logger.Info(ctx, "Mining partition %s", partition.Clause())

	queue := make(chan WorkItem, o.Config.Miner.QueueSize)

	var workers sync.WaitGroup
	for i := 0; i < o.Config.Miner.Workers; i++ {
		workers.Add(1)
		go func(workerID int) {
			defer workers.Done()
			o.Aggregator.Run(ctx, workerID, queue)
		}(i)
	}

	// Miner đóng queue khi xong, các worker thoát khi queue cạn
	o.Miner.Mine(ctx, partition, queue)
	workers.Wait()
}
