package model

import (
	"context"
	"fmt"
	"time"

	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/pkg/db"
	"github.com/thep200/github-word-miner/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Word là một từ trong chỉ mục tần suất toàn cục.
// Bất biến: value luôn bằng python_value + java_value
type Word struct {
	Model
	Name        string    `json:"name" gorm:"column:name;primaryKey;type:varchar(191);not null"`
	Value       int64     `json:"value" gorm:"column:value;not null;default:0"`
	PythonValue int64     `json:"python_value" gorm:"column:python_value;not null;default:0"`
	JavaValue   int64     `json:"java_value" gorm:"column:java_value;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewWord(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Word, error) {
	word := &Word{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return word, nil
}

func (w *Word) TableName() string {
	return "words"
}

// MergeCounts cộng dồn tần suất của một repository vào chỉ mục toàn cục.
// Toàn bộ từ của một repo được commit trong một transaction duy nhất,
// mỗi dòng dùng increment phía store (ON DUPLICATE KEY UPDATE) nên an toàn
// khi nhiều worker ghi đồng thời
func (w *Word) MergeCounts(ctx context.Context, language string, counts map[string]int) error {
	if !SupportedLanguage(language) {
		return fmt.Errorf("unsupported language %q", language)
	}
	if len(counts) == 0 {
		return nil
	}

	db, err := w.Mysql.Db()
	if err != nil {
		w.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	now := time.Now()
	rows := make([]Word, 0, len(counts))
	for name, count := range counts {
		row := Word{
			Name:      TruncateString(name, 190),
			Value:     int64(count),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if language == LanguagePython {
			row.PythonValue = int64(count)
		} else {
			row.JavaValue = int64(count)
		}
		rows = append(rows, row)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":        gorm.Expr("`value` + VALUES(`value`)"),
				"python_value": gorm.Expr("`python_value` + VALUES(`python_value`)"),
				"java_value":   gorm.Expr("`java_value` + VALUES(`java_value`)"),
				"updated_at":   now,
			}),
		}).CreateInBatches(rows, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to merge word counts: %w", result.Error)
		}
		return nil
	})
}

// ApplyDeltas áp dụng một lô word delta nhận từ Kafka vào chỉ mục
func (w *Word) ApplyDeltas(ctx context.Context, deltas []WordDeltaMessage) error {
	for _, delta := range deltas {
		if err := w.MergeCounts(ctx, delta.Language, delta.Counts); err != nil {
			return err
		}
	}
	return nil
}
