package model

import (
	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/pkg/db"
	"github.com/thep200/github-word-miner/pkg/log"
)

// Model là phần chung được nhúng vào các model, chỉ giữ các dependency
// được inject, không mang cột dữ liệu nào
type Model struct {
	Config *cfg.Config `gorm:"-"`
	Logger log.Logger  `gorm:"-"`
	Mysql  *db.Mysql   `gorm:"-"`
}

// Các ngôn ngữ được hỗ trợ bởi pipeline
const (
	LanguagePython = "python"
	LanguageJava   = "java"
)

func SupportedLanguage(language string) bool {
	return language == LanguagePython || language == LanguageJava
}
