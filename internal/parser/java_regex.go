package parser

import (
	"os"
	"regexp"
)

// Bắt các khai báo phương thức dạng "modifier... Type name(...) {",
// không bắt constructor vì constructor không có kiểu trả về đứng trước tên
var javaMethodPattern = regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|protected|private|static|final|abstract|synchronized|native|default)\s+)*[\w<>\[\],.?\s]+?\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\([^)]*\)\s*(?:throws\s+[\w,.\s]+)?\s*\{`)

// Các từ khóa điều khiển có cú pháp giống lời gọi phương thức
var javaKeywords = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"catch":  true,
	"return": true,
	"new":    true,
	"do":     true,
	"try":    true,
	"else":   true,
	"throw":  true,
	"super":  true,
	"this":   true,
}

// JavaRegexParser trích xuất tên phương thức Java bằng regex.
// Đây là backend mặc định, nhanh nhưng chấp nhận bỏ sót một số dạng khai báo
type JavaRegexParser struct{}

func NewJavaRegexParser() *JavaRegexParser {
	return &JavaRegexParser{}
}

func (p *JavaRegexParser) Extract(path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	matches := javaMethodPattern.FindAllSubmatch(source, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := string(m[1])
		if javaKeywords[name] {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
