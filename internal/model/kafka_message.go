package model

// WordDeltaMessage là lô tần suất từ của một repository gửi tới Kafka
// ở chế độ persist qua Kafka
type WordDeltaMessage struct {
	Repo     string         `json:"repo"`
	Language string         `json:"language"`
	Counts   map[string]int `json:"counts"`
}

// RepoMinedMessage thông báo một repository đã được xử lý xong
type RepoMinedMessage struct {
	FullName string `json:"full_name"`
	Language string `json:"language"`
	Words    bool   `json:"words"`
}
