package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	SourcesDir        string
	Port              string
	APIAccessKey      string
	WorkerCount       int
	SchedulerInterval int
	CacheTTL          int
	CacheSize         int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
