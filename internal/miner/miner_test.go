package miner

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thep200/github-word-miner/cfg"
	githubapi "github.com/thep200/github-word-miner/internal/github_api"
	"github.com/thep200/github-word-miner/internal/model"
	"github.com/thep200/github-word-miner/internal/tokenizer"
)

// --- fakes ---

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, format string, args ...interface{})     {}
func (nopLogger) Warn(ctx context.Context, format string, args ...interface{})     {}
func (nopLogger) Error(ctx context.Context, format string, args ...interface{})    {}
func (nopLogger) Debug(ctx context.Context, format string, args ...interface{})    {}
func (nopLogger) Critical(ctx context.Context, format string, args ...interface{}) {}

type fakeDiscovery struct {
	items    []githubapi.GithubAPIResponse
	searches int
}

func (d *fakeDiscovery) Search(ctx context.Context, query string, page, perPage int) (*githubapi.SearchResponse, error) {
	d.searches++
	resp := &githubapi.SearchResponse{TotalCount: len(d.items)}
	if page == 1 {
		resp.Items = d.items
	}
	return resp, nil
}

func (d *fakeDiscovery) SearchRateLimit(ctx context.Context) (int, time.Time, error) {
	return 30, time.Now(), nil
}

// fakeFetcher tạo thư mục clone giả chứa các file nguồn được cấu hình sẵn
type fakeFetcher struct {
	staging string
	files   map[string]map[string]string // fullName -> relative path -> content
	mu      sync.Mutex
	calls   []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, fullName string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fullName)
	f.mu.Unlock()

	dest := filepath.Join(f.staging, model.RepoID(fullName))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", err
	}
	for rel, content := range f.files[fullName] {
		path := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", err
		}
	}
	return dest, nil
}

type repoRecord struct {
	language string
	words    bool
}

type fakeRepoStore struct {
	mu      sync.Mutex
	records map[string]repoRecord
}

func newFakeRepoStore() *fakeRepoStore {
	return &fakeRepoStore{records: make(map[string]repoRecord)}
}

func (s *fakeRepoStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	return ok, nil
}

func (s *fakeRepoStore) MarkMined(ctx context.Context, fullName, language string, words bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[model.RepoID(fullName)] = repoRecord{language: language, words: words}
	return nil
}

// fakeWordSink tích lũy tần suất theo ngôn ngữ, mô phỏng increment của store
type fakeWordSink struct {
	mu     sync.Mutex
	value  map[string]int
	python map[string]int
	java   map[string]int
}

func newFakeWordSink() *fakeWordSink {
	return &fakeWordSink{
		value:  make(map[string]int),
		python: make(map[string]int),
		java:   make(map[string]int),
	}
}

func (s *fakeWordSink) Flush(ctx context.Context, fullName, language string, counts map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for word, count := range counts {
		s.value[word] += count
		switch language {
		case model.LanguagePython:
			s.python[word] += count
		case model.LanguageJava:
			s.java[word] += count
		}
	}
	return nil
}

func testConfig(t *testing.T) *cfg.Config {
	t.Helper()
	loader, err := cfg.NewMockLoader()
	require.NoError(t, err)
	config, err := loader.Load()
	require.NoError(t, err)
	config.Miner.StagingDir = t.TempDir()
	return config
}

func repoItem(fullName, language string, stars int64) githubapi.GithubAPIResponse {
	return githubapi.GithubAPIResponse{
		FullName:        fullName,
		Language:        language,
		StargazersCount: stars,
	}
}

// --- tests ---

func TestMineSkipsRecordedRepos(t *testing.T) {
	config := testConfig(t)
	repos := newFakeRepoStore()
	require.NoError(t, repos.MarkMined(context.Background(), "acme/foo", "python", true))

	discovery := &fakeDiscovery{items: []githubapi.GithubAPIResponse{repoItem("acme/foo", "Python", 500)}}
	fetch := &fakeFetcher{staging: config.Miner.StagingDir}

	m, err := NewMiner(nopLogger{}, config, discovery, fetch, repos)
	require.NoError(t, err)

	queue := make(chan WorkItem, config.Miner.QueueSize)
	go m.Mine(context.Background(), Partition{Lower: 300, Upper: 310}, queue)

	var items []WorkItem
	for item := range queue {
		items = append(items, item)
	}

	// Repo đã có bản ghi: không clone lại, không enqueue
	assert.Empty(t, fetch.calls)
	assert.Empty(t, items)
}

func TestMineEnqueuesFetchedRepos(t *testing.T) {
	config := testConfig(t)
	repos := newFakeRepoStore()
	discovery := &fakeDiscovery{items: []githubapi.GithubAPIResponse{
		repoItem("acme/foo", "Python", 500),
		repoItem("acme/bar", "Java", 400),
		repoItem("acme/other", "Ruby", 300), // ngôn ngữ không hỗ trợ
	}}
	fetch := &fakeFetcher{staging: config.Miner.StagingDir}

	m, err := NewMiner(nopLogger{}, config, discovery, fetch, repos)
	require.NoError(t, err)

	queue := make(chan WorkItem, config.Miner.QueueSize)
	go m.Mine(context.Background(), Partition{Lower: 300, Upper: 310}, queue)

	var items []WorkItem
	for item := range queue {
		items = append(items, item)
	}

	require.Len(t, items, 2)
	assert.Equal(t, "acme/foo", items[0].FullName)
	assert.Equal(t, model.LanguagePython, items[0].Language)
	assert.Equal(t, "acme/bar", items[1].FullName)
	assert.Equal(t, model.LanguageJava, items[1].Language)
	assert.Equal(t, []string{"acme/foo", "acme/bar"}, fetch.calls)
}

// Kịch bản đầu-cuối: hai repo Python qua toàn bộ pipeline với pool hai worker
func TestMineEndToEnd(t *testing.T) {
	config := testConfig(t)
	repos := newFakeRepoStore()
	sink := newFakeWordSink()

	discovery := &fakeDiscovery{items: []githubapi.GithubAPIResponse{
		repoItem("acme/foo", "Python", 500),
		repoItem("acme/bar", "Python", 400),
	}}
	fetch := &fakeFetcher{
		staging: config.Miner.StagingDir,
		files: map[string]map[string]string{
			"acme/foo": {"app.py": "def get_user_name():\n    pass\n\ndef load_config():\n    pass\n"},
			"acme/bar": {"main.py": "def get_user_name():\n    pass\n"},
		},
	}

	tk, err := tokenizer.NewTokenizer(nopLogger{}, "regex")
	require.NoError(t, err)

	m, err := NewMiner(nopLogger{}, config, discovery, fetch, repos)
	require.NoError(t, err)
	a, err := NewAggregator(nopLogger{}, tk, sink, repos)
	require.NoError(t, err)

	queue := make(chan WorkItem, config.Miner.QueueSize)
	var workers sync.WaitGroup
	for i := 0; i < 2; i++ {
		workers.Add(1)
		go func(id int) {
			defer workers.Done()
			a.Run(context.Background(), id, queue)
		}(i)
	}

	m.Mine(context.Background(), Partition{Lower: 300, Upper: 310}, queue)
	workers.Wait()

	// Tần suất cộng dồn qua cả hai repo
	assert.Equal(t, map[string]int{"get": 2, "user": 2, "name": 2, "load": 1, "config": 1}, sink.value)
	assert.Equal(t, sink.value, sink.python)
	assert.Empty(t, sink.java)

	// Cả hai repo được đánh dấu đã xử lý và clone bị xóa
	for _, id := range []string{"acme__foo", "acme__bar"} {
		record, ok := repos.records[id]
		require.True(t, ok, id)
		assert.True(t, record.words, id)
		assert.Equal(t, model.LanguagePython, record.language)
		assert.NoDirExists(t, filepath.Join(config.Miner.StagingDir, id))
	}
}
