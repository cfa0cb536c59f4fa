// Gói parser trích xuất tên hàm/phương thức từ file nguồn.
// Mỗi ngôn ngữ (và backend) có một biến thể riêng, được chọn qua factory

package parser

import "errors"

var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrUnknownBackend  = errors.New("unknown parser backend")
)

// Parser trích xuất danh sách tên hàm/phương thức từ một file nguồn
type Parser interface {
	Extract(path string) ([]string, error)
}
