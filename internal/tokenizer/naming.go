// Nhận diện naming convention bằng cách round-trip qua biến đổi chuẩn:
// một identifier là snake_case/camelCase khi biến đổi tương ứng trả về
// chính nó. Identifier không khớp dạng nào bị loại bỏ

package tokenizer

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// IsSnakeCase kiểm tra identifier có đúng dạng snake_case hay không.
// Phép biến đổi chuẩn chỉ đụng tới chữ hoa và dấu gạch ngang, chữ số
// đi qua nguyên vẹn nên md5_hash hay base64_encode vẫn hợp lệ
func IsSnakeCase(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) || r == '-' {
			return false
		}
	}
	return true
}

// IsCamelCase kiểm tra identifier có đúng dạng camelCase (chữ đầu thường) hay không
func IsCamelCase(name string) bool {
	return name == strcase.ToLowerCamel(name)
}

// SnakeSplit tách identifier snake_case thành các từ viết thường,
// bỏ qua các đoạn rỗng do underscore liền nhau
func SnakeSplit(name string) []string {
	parts := strings.Split(name, "_")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		words = append(words, strings.ToLower(part))
	}
	return words
}

// CamelSplit tách identifier camelCase thành các từ viết thường.
// Ranh giới nằm tại chuyển tiếp thường->hoa và tại cuối một chuỗi chữ hoa
// đứng trước Titlecase (vd: XMLParser -> xml, parser)
func CamelSplit(name string) []string {
	runes := []rune(name)
	if len(runes) == 0 {
		return nil
	}

	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsLower(prev) && unicode.IsUpper(cur)
		if !boundary && unicode.IsUpper(prev) && unicode.IsUpper(cur) {
			// ranh giới UPPER-run -> Titlecase
			boundary = i+1 < len(runes) && unicode.IsLower(runes[i+1])
		}
		if boundary {
			words = append(words, strings.ToLower(string(runes[start:i])))
			start = i
		}
	}
	words = append(words, strings.ToLower(string(runes[start:])))
	return words
}
