// Gói tokenizer điều phối parser trên toàn bộ file nguồn của một repository
// và trả về tần suất xuất hiện của từng từ đã chuẩn hóa

package tokenizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/thep200/github-word-miner/internal/model"
	"github.com/thep200/github-word-miner/internal/parser"
	"github.com/thep200/github-word-miner/pkg/log"
)

// ErrRepoNotFound trả về khi đường dẫn repository không tồn tại trên đĩa
var ErrRepoNotFound = errors.New("no repository found")

// Phần mở rộng file nguồn theo ngôn ngữ
var extensions = map[string]string{
	model.LanguagePython: ".py",
	model.LanguageJava:   ".java",
}

type Tokenizer struct {
	Logger  log.Logger
	parsers map[string]parser.Parser
}

// NewTokenizer dựng parser cho từng ngôn ngữ được hỗ trợ,
// javaBackend chọn biến thể parser Java
func NewTokenizer(logger log.Logger, javaBackend string) (*Tokenizer, error) {
	parsers := make(map[string]parser.Parser, len(extensions))
	for language := range extensions {
		backend := ""
		if language == model.LanguageJava {
			backend = javaBackend
		}
		p, err := parser.FactoryParser(language, backend)
		if err != nil {
			return nil, err
		}
		parsers[language] = p
	}

	return &Tokenizer{
		Logger:  logger,
		parsers: parsers,
	}, nil
}

// Counts trả về tần suất từ của toàn bộ identifier hợp lệ trong repository.
// Lỗi parse trên từng file chỉ làm file đó bị bỏ qua, không hủy cả repo
func (t *Tokenizer) Counts(repoPath, language string) (map[string]int, error) {
	ctx := context.Background()

	if info, err := os.Stat(repoPath); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRepoNotFound, repoPath)
	}

	p, ok := t.parsers[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", parser.ErrUnknownLanguage, language)
	}

	pattern := filepath.Join(repoPath, "**", "*"+extensions[language])
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob source files: %w", err)
	}

	counts := make(map[string]int)
	for _, file := range files {
		names, err := p.Extract(file)
		if err != nil {
			t.Logger.Debug(ctx, "Skipping unparseable file %s: %v", file, err)
			continue
		}
		for _, name := range names {
			for _, word := range splitByConvention(name, language) {
				counts[word]++
			}
		}
	}

	return counts, nil
}

// splitByConvention áp dụng convention của ngôn ngữ: hàm Python phải là
// snake_case, phương thức Java phải là camelCase; sai convention thì loại bỏ
func splitByConvention(name, language string) []string {
	switch language {
	case model.LanguagePython:
		if IsSnakeCase(name) {
			return SnakeSplit(name)
		}
	case model.LanguageJava:
		if IsCamelCase(name) {
			return CamelSplit(name)
		}
	}
	return nil
}
