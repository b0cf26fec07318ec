package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"tiktok-planner/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	TikWM       TikWM       `json:"tikwm"`
	Search      Search      `json:"search"`
	RateLimit   RateLimit   `json:"rateLimit"`
	Client      Client      `json:"client"`
	Queue       Queue       `json:"queue"`
	RedisClient RedisClient `json:"redisClient"`
	Database    Database    `json:"database"`
}

type App struct {
	Port         int      `json:"port"`
	AllowOrigins []string `json:"allowOrigins"`
}

// TikWM configures the upstream feed search provider
type TikWM struct {
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	Header         Header `json:"header"`
}

// Header is the identifying header set the provider requires
type Header struct {
	Accept    string `json:"accept"`
	Referer   string `json:"referer"`
	UserAgent string `json:"userAgent"`
}

// Search holds proxy endpoint defaults
type Search struct {
	DefaultCount  string `json:"defaultCount"`
	DefaultCursor string `json:"defaultCursor"`
}

// RateLimit throttles the proxy per client IP. A negative rate disables it.
type RateLimit struct {
	RequestsPerMinute int `json:"requestsPerMinute"`
	Burst             int `json:"burst"`
}

// Client configures the terminal planner: where the proxy lives and how the
// search controller behaves.
type Client struct {
	ProxyURL       string   `json:"proxyURL"`
	PageSize       string   `json:"pageSize"`
	DefaultKeyword string   `json:"defaultKeyword"`
	PresetKeywords []string `json:"presetKeywords"`
	ErrorMessage   string   `json:"errorMessage"`
}

// Queue selects the blob store backing the repost queue
type Queue struct {
	Backend  string `json:"backend"` // file | memory | redis | postgres | mysql
	Key      string `json:"key"`
	FilePath string `json:"filePath"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type Database struct {
	Psql  Db `json:"psql"`
	MySql Db `json:"mysql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

const (
	DefaultUpstreamEndpoint = "https://www.tikwm.com/api/feed/search"
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAccept           = "application/json, text/plain, */*"
	DefaultReferer          = "https://www.tikwm.com/"
	DefaultSearchCount      = "12"
	DefaultSearchCursor     = "0"
	DefaultClientPageSize   = "18"
	DefaultQueueKey         = "tiktok-queue"
	DefaultClientKeyword    = "القهوة"
	DefaultClientError      = "حدث خطأ أثناء جلب المقاطع. جرّب مرة أخرى لاحقًا."
)

var C Config

func init() {
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
	ApplyDefaults(&C)
	initApp(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// ApplyDefaults fills every empty setting with its built-in value.
func ApplyDefaults(c *Config) {
	if c.TikWM.Endpoint == "" {
		c.TikWM.Endpoint = DefaultUpstreamEndpoint
	}
	if c.TikWM.TimeoutSeconds <= 0 {
		c.TikWM.TimeoutSeconds = 15
	}
	if c.TikWM.Header.UserAgent == "" {
		c.TikWM.Header.UserAgent = DefaultUserAgent
	}
	if c.TikWM.Header.Accept == "" {
		c.TikWM.Header.Accept = DefaultAccept
	}
	if c.TikWM.Header.Referer == "" {
		c.TikWM.Header.Referer = DefaultReferer
	}
	if c.Search.DefaultCount == "" {
		c.Search.DefaultCount = DefaultSearchCount
	}
	if c.Search.DefaultCursor == "" {
		c.Search.DefaultCursor = DefaultSearchCursor
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 60
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 10
	}
	if c.Client.ProxyURL == "" {
		c.Client.ProxyURL = "http://localhost:10001"
	}
	if c.Client.PageSize == "" {
		c.Client.PageSize = DefaultClientPageSize
	}
	if c.Client.DefaultKeyword == "" {
		c.Client.DefaultKeyword = DefaultClientKeyword
	}
	if len(c.Client.PresetKeywords) == 0 {
		c.Client.PresetKeywords = []string{"القهوة", "قهوة مختصة", "coffee tiktok"}
	}
	if c.Client.ErrorMessage == "" {
		c.Client.ErrorMessage = DefaultClientError
	}
	if c.Queue.Backend == "" {
		c.Queue.Backend = "file"
	}
	if c.Queue.Key == "" {
		c.Queue.Key = DefaultQueueKey
	}
	if c.Queue.FilePath == "" {
		c.Queue.FilePath = "data/queue-store.json"
	}
	if c.RedisClient.Host == "" {
		c.RedisClient.Host = "localhost"
	}
	if c.RedisClient.Port == "" {
		c.RedisClient.Port = "6379"
	}
	if len(c.App.AllowOrigins) == 0 {
		c.App.AllowOrigins = []string{"http://localhost:3000", "http://localhost:4200"}
	}
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("QUEUE_BACKEND"); v != "" {
		C.Queue.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("TIKWM_ENDPOINT"); v != "" {
		C.TikWM.Endpoint = v
	}
	if v := os.Getenv("PROXY_URL"); v != "" {
		C.Client.ProxyURL = v
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
}
