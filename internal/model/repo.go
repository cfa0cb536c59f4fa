package model

import (
	"context"
	"errors"
	"time"

	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/pkg/db"
	"github.com/thep200/github-word-miner/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo đánh dấu một repository đã được xử lý. Chỉ cần tồn tại bản ghi
// là các lần mine sau sẽ bỏ qua repository đó, bất kể kết quả trước đó
type Repo struct {
	Model
	ID        string    `json:"id" gorm:"column:id;primaryKey;type:varchar(191);not null"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Cloned    bool      `json:"cloned" gorm:"column:cloned;not null;default:false"`
	Words     bool      `json:"words" gorm:"column:words;not null;default:false"`
	Language  string    `json:"language" gorm:"column:language;type:varchar(32);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewRepo(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Repo, error) {
	repo := &Repo{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return repo, nil
}

func (r *Repo) TableName() string {
	return "repos"
}

// Exists kiểm tra repository đã có bản ghi hay chưa
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	db, err := r.Mysql.Db()
	if err != nil {
		return false, err
	}

	var existing Repo
	result := db.Where("id = ?", id).First(&existing)
	if result.Error == nil {
		return true, nil
	}
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, result.Error
}

// MarkMined ghi (hoặc ghi đè) bản ghi repository sau khi xử lý xong
func (r *Repo) MarkMined(ctx context.Context, fullName, language string, words bool) error {
	db, err := r.Mysql.Db()
	if err != nil {
		r.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	now := time.Now()
	record := &Repo{
		ID:        RepoID(TruncateString(fullName, 190)),
		Name:      TruncateString(fullName, 250),
		Cloned:    true,
		Words:     words,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cloned", "words", "language", "updated_at"}),
	}).Create(record).Error; err != nil {
		r.Logger.Error(ctx, "Failed to mark repo %s as mined: %v", fullName, err)
		return err
	}

	return nil
}
