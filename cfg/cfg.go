package cfg

type (
	App struct {
		Name    string
		Version string
	}

	Mysql struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	GithubApi struct {
		AccessToken       string
		SearchApiUrl      string
		RateLimitApiUrl   string
		RequestsPerSecond int
		ThrottleDelay     int
		PerPage           int
		RateLimitResetMin int
	}

	Kafka struct {
		Brokers  []string
		Producer KafkaProducer
	}

	KafkaProducer struct {
		TopicWords string
		TopicRepos string
	}

	// Miner chứa cấu hình cho pipeline đào từ vựng:
	// khoảng sao tìm kiếm, kích thước hàng đợi, số worker và thư mục clone tạm
	Miner struct {
		LowerBound  int
		UpperBound  int
		Step        int
		QueueSize   int
		Workers     int
		StagingDir  string
		JavaBackend string
		PersistMode string
	}
)

type Config struct {
	App       App
	Mysql     Mysql
	GithubApi GithubApi
	Kafka     Kafka
	Miner     Miner
}
