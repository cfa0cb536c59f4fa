package limiter

import (
	"sync"
	"time"
)

// Delay tối thiểu giữa hai lần kiểm tra của Wait
const minThrottleDelay = 10 * time.Millisecond

// Giới hạn số lượng request trong 1 giây
type RateLimiter struct {
	requestTimes []time.Time
	maxRequests  int
	mu           sync.Mutex
}

func NewRateLimiter(maxRequests int) *RateLimiter {
	return &RateLimiter{
		requestTimes: make([]time.Time, 0, maxRequests),
		maxRequests:  maxRequests,
	}
}

// Allow kiểm tra xem có thể thực hiện request mới hay không
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	oneSecondAgo := now.Add(-1 * time.Second)

	// Xóa các request cũ hơn 1 giây
	validTimes := make([]time.Time, 0, len(r.requestTimes))
	for _, t := range r.requestTimes {
		if t.After(oneSecondAgo) {
			validTimes = append(validTimes, t)
		}
	}
	r.requestTimes = validTimes

	// Nếu số lượng request trong 1 giây vừa qua nhỏ hơn giới hạn thì add request mới
	if len(r.requestTimes) < r.maxRequests {
		r.requestTimes = append(r.requestTimes, now)
		return true
	}

	return false
}

// Wait chặn cho tới khi được phép thực hiện request mới.
// Delay được kẹp dưới để vòng chờ không quay vòng chiếm CPU
func (r *RateLimiter) Wait(throttleDelay time.Duration) {
	if throttleDelay < minThrottleDelay {
		throttleDelay = minThrottleDelay
	}
	for !r.Allow() {
		time.Sleep(throttleDelay)
	}
}
