package model

import "strings"

// TruncateString cắt chuỗi xuống độ dài tối đa cho phép
// nếu chuỗi dài hơn giới hạn
func TruncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength]
}

// RepoID tạo khóa document từ full name của repository,
// thay "/" bằng "__" (vd: acme/foo -> acme__foo)
func RepoID(fullName string) string {
	return strings.ReplaceAll(fullName, "/", "__")
}
