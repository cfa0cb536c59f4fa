package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "github-word-miner",
			Version: "0.0.1",
		},

		// Mysql
		Mysql: Mysql{
			Host:                  "127.0.0.1",
			Password:              "root",
			Username:              "root",
			Port:                  "3306",
			Database:              "github_word_miner",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:       "",
			SearchApiUrl:      "https://api.github.com/search/repositories",
			RateLimitApiUrl:   "https://api.github.com/rate_limit",
			RequestsPerSecond: 5,
			ThrottleDelay:     200,
			PerPage:           100,
			RateLimitResetMin: 1,
		},

		// Kafka
		Kafka: Kafka{
			Brokers: []string{"127.0.0.1:9092"},
			Producer: KafkaProducer{
				TopicWords: "miner.words",
				TopicRepos: "miner.repos",
			},
		},

		// Miner
		Miner: Miner{
			LowerBound:  300,
			UpperBound:  6000,
			Step:        10,
			QueueSize:   10,
			Workers:     2,
			StagingDir:  "./tmp",
			JavaBackend: "regex",
			PersistMode: "mysql",
		},
	}, nil
}
