package parser

import (
	"fmt"

	"github.com/thep200/github-word-miner/internal/model"
)

// FactoryParser chọn biến thể parser theo ngôn ngữ và backend.
// Backend chỉ có ý nghĩa với Java (regex mặc định, sitter thay thế)
func FactoryParser(language, backend string) (Parser, error) {
	switch language {
	case model.LanguagePython:
		return NewPythonParser(), nil
	case model.LanguageJava:
		switch backend {
		case "", "regex":
			return NewJavaRegexParser(), nil
		case "sitter", "treesitter":
			return NewJavaSitterParser()
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}
}
