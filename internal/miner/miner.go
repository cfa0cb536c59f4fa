// Miner là producer của pipeline: duyệt kết quả search của một partition,
// bỏ qua repository đã có bản ghi, clone repository mới và đẩy work item
// vào hàng đợi cho pool aggregator

package miner

import (
	"context"
	"time"

	"github.com/thep200/github-word-miner/cfg"
	githubapi "github.com/thep200/github-word-miner/internal/github_api"
	"github.com/thep200/github-word-miner/internal/limiter"
	"github.com/thep200/github-word-miner/internal/model"
	"github.com/thep200/github-word-miner/pkg/log"
)

// Còn lại ít hơn hoặc bằng ngưỡng này thì chờ tới thời điểm reset quota
const searchQuotaThreshold = 2

// GitHub search API chỉ cho truy cập 1000 kết quả đầu của mỗi query
const maxSearchResults = 1000

// WorkItem là đơn vị công việc trên hàng đợi, quyền sở hữu chuyển từ
// Miner sang aggregator nào lấy được nó
type WorkItem struct {
	Path     string
	Language string
	FullName string
}

// Discovery là collaborator tìm kiếm repository (GitHub search API)
type Discovery interface {
	Search(ctx context.Context, query string, page, perPage int) (*githubapi.SearchResponse, error)
	SearchRateLimit(ctx context.Context) (int, time.Time, error)
}

// Fetcher là collaborator clone repository về đĩa cục bộ
type Fetcher interface {
	Fetch(ctx context.Context, fullName string) (string, error)
}

// RepoStore là trạng thái dedup bền vững giữa các lượt chạy
type RepoStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	MarkMined(ctx context.Context, fullName, language string, words bool) error
}

type Miner struct {
	Logger      log.Logger
	Config      *cfg.Config
	Discovery   Discovery
	Fetcher     Fetcher
	Repos       RepoStore
	rateLimiter *limiter.RateLimiter
}

func NewMiner(logger log.Logger, config *cfg.Config, discovery Discovery, fetcher Fetcher, repos RepoStore) (*Miner, error) {
	return &Miner{
		Logger:      logger,
		Config:      config,
		Discovery:   discovery,
		Fetcher:     fetcher,
		Repos:       repos,
		rateLimiter: limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond),
	}, nil
}

// Mine xử lý một partition và đóng hàng đợi khi kết thúc.
// Đóng queue nằm trong defer nên tín hiệu shutdown luôn được phát
// cho mọi consumer kể cả khi search lỗi giữa chừng
func (m *Miner) Mine(ctx context.Context, partition Partition, queue chan<- WorkItem) {
	defer close(queue)

	query := partition.Query()
	perPage := m.Config.GithubApi.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	// Chờ quota search trước khi bắt đầu partition
	m.waitForSearchQuota(ctx)

	seen := 0
	total := -1
	for page := 1; page*perPage <= maxSearchResults; page++ {
		m.rateLimiter.Wait(time.Duration(m.Config.GithubApi.ThrottleDelay) * time.Millisecond)

		resp, err := m.Discovery.Search(ctx, query, page, perPage)
		if err != nil {
			// Partition coi như không còn kết quả, không gây lỗi cho cả lượt chạy
			m.Logger.Error(ctx, "Error while requesting the GitHub API: %v", err)
			return
		}

		if total < 0 {
			total = resp.TotalCount
			if total == 0 {
				m.Logger.Info(ctx, "No results for query: %s", query)
				return
			}
		}

		if len(resp.Items) == 0 {
			break
		}

		for _, repo := range resp.Items {
			if err := m.mineRepo(ctx, repo, queue); err != nil {
				m.Logger.Error(ctx, "Failed to mine %s: %v", repo.FullName, err)
			}
		}

		seen += len(resp.Items)
		if seen >= total {
			break
		}
	}

	m.Logger.Info(ctx, "Producer finished - No more repositories to process")
}

// mineRepo xử lý một kết quả search: dedup, clone và enqueue
func (m *Miner) mineRepo(ctx context.Context, repo githubapi.GithubAPIResponse, queue chan<- WorkItem) error {
	language := normalizeLanguage(repo.Language)
	if !model.SupportedLanguage(language) {
		// Query đã lọc theo ngôn ngữ nhưng API có thể trả về ngôn ngữ chính khác
		return nil
	}

	exists, err := m.Repos.Exists(ctx, model.RepoID(repo.FullName))
	if err != nil {
		return err
	}
	if exists {
		// Đã xử lý trong một lượt chạy trước, bỏ qua bất kể kết quả cũ
		return nil
	}

	path, err := m.Fetcher.Fetch(ctx, repo.FullName)
	if err != nil {
		// Lỗi clone là tạm thời: không ghi bản ghi để lượt sau thử lại
		m.Logger.Error(ctx, "%s has not been cloned: %v", repo.FullName, err)
		return nil
	}

	queue <- WorkItem{
		Path:     path,
		Language: language,
		FullName: repo.FullName,
	}
	return nil
}

// waitForSearchQuota ngủ tới thời điểm reset khi quota search sắp cạn
func (m *Miner) waitForSearchQuota(ctx context.Context) {
	for {
		remaining, reset, err := m.Discovery.SearchRateLimit(ctx)
		if err != nil {
			m.Logger.Warn(ctx, "Cannot read search rate limit: %v", err)
			return
		}
		if remaining > searchQuotaThreshold {
			return
		}

		wait := time.Until(reset)
		if wait <= 0 {
			return
		}
		m.Logger.Info(ctx, "Waiting %v for the GitHub API", wait.Round(time.Second))
		time.Sleep(wait)
	}
}

func normalizeLanguage(language string) string {
	switch language {
	case "Python", "python":
		return model.LanguagePython
	case "Java", "java":
		return model.LanguageJava
	default:
		return ""
	}
}
