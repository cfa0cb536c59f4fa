package parser

import (
	"os"
	"regexp"
)

// Bắt các khai báo def/async def ở đầu dòng (cho phép thụt lề)
var pythonDefPattern = regexp.MustCompile(`(?m)^[ \t]*(?:async[ \t]+)?def[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*\(`)

// PythonParser trích xuất tên hàm Python bằng regex trên khai báo def
type PythonParser struct{}

func NewPythonParser() *PythonParser {
	return &PythonParser{}
}

func (p *PythonParser) Extract(path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	matches := pythonDefPattern.FindAllSubmatch(source, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, string(m[1]))
	}
	return names, nil
}
