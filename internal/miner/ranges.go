// Sinh các partition tìm kiếm rời nhau phủ toàn bộ không gian khám phá:
// một partition theo ngày cho phần đuôi dưới ngưỡng sao, sau đó các dải sao
// cố định, cuối cùng là dải mở phía trên. Danh sách được đảo ngược để mine
// các partition nhiều sao/mới nhất trước

package miner

import (
	"fmt"
	"time"
)

// Ngày GitHub ra mắt, mốc bắt đầu cho các partition theo ngày
var githubEpoch = time.Date(2008, 2, 8, 0, 0, 0, 0, time.UTC)

// Partition là một lát cắt của không gian tìm kiếm, immutable,
// được tiêu thụ đúng một lần bởi một lượt Miner
type Partition struct {
	Lower     int
	Upper     int
	OpenEnded bool
	CreatedOn time.Time
}

// Clause trả về mệnh đề stars/created của partition
func (p Partition) Clause() string {
	if !p.CreatedOn.IsZero() {
		return fmt.Sprintf("stars:%d..%d created:%s", p.Lower, p.Upper, p.CreatedOn.Format("2006-01-02"))
	}
	if p.OpenEnded {
		return fmt.Sprintf("stars:>%d", p.Upper)
	}
	return fmt.Sprintf("stars:%d..%d", p.Lower, p.Upper)
}

// Query trả về query hoàn chỉnh gửi tới search API, kèm bộ lọc ngôn ngữ cố định
func (p Partition) Query() string {
	return fmt.Sprintf(`%s language:"Python" language:"Java"`, p.Clause())
}

// Partitions sinh dãy partition theo thứ tự mine: dải mở trên cùng trước,
// rồi các dải sao giảm dần, rồi các partition theo ngày từ mới tới cũ
func Partitions(lower, upper, step int) ([]Partition, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}

	var partitions []Partition

	// Partition theo ngày cho các repo dưới ngưỡng sao, mỗi ngày một partition
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for date := githubEpoch; date.Before(today); date = date.AddDate(0, 0, 1) {
		partitions = append(partitions, Partition{Lower: 1, Upper: lower, CreatedOn: date})
	}

	// Các dải sao cố định từ lower tới upper
	for i := lower; i < upper; i += step {
		partitions = append(partitions, Partition{Lower: i, Upper: i + step})
		if i+step >= upper {
			partitions = append(partitions, Partition{Upper: i + step, OpenEnded: true})
		}
	}

	// Đảo ngược để bắt đầu từ các partition nhiều sao nhất
	for i, j := 0, len(partitions)-1; i < j; i, j = i+1, j-1 {
		partitions[i], partitions[j] = partitions[j], partitions[i]
	}

	return partitions, nil
}
