// Caller chịu trách nhiệm gọi GitHub search API và rate_limit API.
// Nó xử lý xác thực bằng access token nếu được cung cấp và đọc các
// header rate limit của GitHub

package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/pkg/log"
)

type Caller struct {
	Logger log.Logger
	Config *cfg.Config
	client *http.Client
}

func NewCaller(logger log.Logger, config *cfg.Config) *Caller {
	return &Caller{
		Logger: logger,
		Config: config,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// HandleRateLimit xử lý rate limit dựa trên thông tin từ header API
func (c *Caller) HandleRateLimit(ctx context.Context, resp *http.Response) (bool, error) {
	rateRemaining := resp.Header.Get("X-RateLimit-Remaining")

	if resp.StatusCode == http.StatusForbidden && rateRemaining == "0" {
		resetTimeStr := resp.Header.Get("X-RateLimit-Reset")
		resetTimeInt, err := strconv.ParseInt(resetTimeStr, 10, 64)

		if err != nil {
			// Nếu không thể parse được thời gian reset, sử dụng cấu hình mặc định
			waitTime := time.Duration(c.Config.GithubApi.RateLimitResetMin) * time.Minute
			c.Logger.Warn(ctx, "Rate limit hit! Không thể xác định thời gian reset chính xác. Chờ %v phút", c.Config.GithubApi.RateLimitResetMin)
			return true, fmt.Errorf("đạt giới hạn API, chờ %v", waitTime)
		}

		// Chuyển đổi từ Unix timestamp sang Go time
		resetTime := time.Unix(resetTimeInt, 0)
		waitTime := time.Until(resetTime)

		if waitTime < 0 {
			waitTime = time.Duration(c.Config.GithubApi.RateLimitResetMin) * time.Minute
		}

		c.Logger.Warn(ctx, "Rate limit hit! GitHub API rate limit đạt ngưỡng. Cần chờ %v đến %v để tiếp tục",
			waitTime.Round(time.Second), resetTime.Format(time.RFC3339))

		return true, fmt.Errorf("đạt giới hạn API, thời gian reset: %v", resetTime.Format(time.RFC3339))
	}

	return false, nil
}

// Search gọi search API với query đã dựng sẵn, sắp xếp theo sao giảm dần
func (c *Caller) Search(ctx context.Context, query string, page, perPage int) (*SearchResponse, error) {
	fullUrl := fmt.Sprintf("%s?q=%s&sort=stars&order=desc&per_page=%d&page=%d",
		c.Config.GithubApi.SearchApiUrl, url.QueryEscape(query), perPage, page)
	c.Logger.Info(ctx, "Calling GitHub API: %s", fullUrl)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
	if err != nil {
		c.Logger.Error(ctx, "Cannot request: %v", err)
		return nil, err
	}

	c.setHeaders(req)

	// Thực hiện request
	resp, err := c.client.Do(req)
	if err != nil {
		c.Logger.Error(ctx, "cannot send request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	// Kiểm tra rate limit
	isRateLimited, rateLimitErr := c.HandleRateLimit(ctx, resp)
	if isRateLimited {
		return nil, rateLimitErr
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot received response: %v", resp.Status)
	}

	// Giải mã phản hồi
	rawResponse := &SearchResponse{}
	err = json.NewDecoder(resp.Body).Decode(rawResponse)
	if err != nil {
		return nil, err
	}

	c.Logger.Info(ctx, "Total repositories found: %d, page: %d, items received: %d",
		rawResponse.TotalCount, page, len(rawResponse.Items))

	if page*perPage > 1000 {
		c.Logger.Warn(ctx, "GitHub API only provides access to the first 1,000 search results")
	}

	return rawResponse, nil
}

// SearchRateLimit trả về quota còn lại và thời điểm reset của search API
func (c *Caller) SearchRateLimit(ctx context.Context) (int, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Config.GithubApi.RateLimitApiUrl, nil)
	if err != nil {
		return 0, time.Time{}, err
	}

	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, time.Time{}, fmt.Errorf("cannot received response: %v", resp.Status)
	}

	var limits rateLimitResponse
	if err := json.NewDecoder(resp.Body).Decode(&limits); err != nil {
		return 0, time.Time{}, err
	}

	return limits.Resources.Search.Remaining, time.Unix(limits.Resources.Search.Reset, 0), nil
}

func (c *Caller) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.Config.GithubApi.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.Config.GithubApi.AccessToken))
	}
}
