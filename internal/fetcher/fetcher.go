// Gói fetcher clone repository từ GitHub về thư mục staging cục bộ.
// Đường dẫn đích là {staging}/{owner}__{name}; nếu đã tồn tại trên đĩa
// thì fetch là no-op và trả về đường dẫn có sẵn

package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/thep200/github-word-miner/cfg"
	"github.com/thep200/github-word-miner/internal/model"
	"github.com/thep200/github-word-miner/pkg/log"
)

const githubUrl = "https://github.com"

type GitFetcher struct {
	Logger log.Logger
	Config *cfg.Config
}

func NewGitFetcher(logger log.Logger, config *cfg.Config) (*GitFetcher, error) {
	return &GitFetcher{
		Logger: logger,
		Config: config,
	}, nil
}

// Fetch clone một repository và trả về đường dẫn cục bộ
func (f *GitFetcher) Fetch(ctx context.Context, fullName string) (string, error) {
	destination := filepath.Join(f.Config.Miner.StagingDir, model.RepoID(fullName))

	// Đã clone từ trước thì dùng lại
	if _, err := os.Stat(destination); err == nil {
		f.Logger.Info(ctx, "%s already exists", fullName)
		return destination, nil
	}

	cloneUrl := fmt.Sprintf("%s/%s.git", githubUrl, fullName)
	_, err := git.PlainCloneContext(ctx, destination, false, &git.CloneOptions{
		URL:          cloneUrl,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		// Dọn phần clone dở dang để lần sau có thể thử lại
		os.RemoveAll(destination)
		return "", fmt.Errorf("failed to clone %s: %w", fullName, err)
	}

	f.Logger.Info(ctx, "%s has been cloned", fullName)
	return destination, nil
}
