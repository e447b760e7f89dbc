package config

import (
	"fmt"
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host        string `envconfig:"WIDGET_SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"WIDGET_SERVER_PORT" default:"8080"`
	GrpcPort    string `envconfig:"GRPC_PORT" default:"8081"`
	ReadTimeout int    `envconfig:"WIDGET_SERVER_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	DbType   int    `envconfig:"REDIS_DB_TYPE" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME" default:"10"`
}

type Session struct {
	TTL       time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SweepSpec string        `envconfig:"SESSION_SWEEP_SPEC" default:"@every 1m"`
	// MaxCount caps live sessions, 0 disables the cap.
	MaxCount int `envconfig:"SESSION_MAX" default:"10000"`
}

type Config struct {
	// An empty key is allowed: every lookup then fails upstream and the
	// widget shows its fallback view.
	OpenWeatherMapAPIKey string `envconfig:"OPEN_WEATHER_MAP_API_KEY"`
	OpenWeatherMapURL    string `envconfig:"OPEN_WEATHER_MAP_URL" default:"https://api.openweathermap.org/data/2.5/weather"`

	DefaultCity string `envconfig:"DEFAULT_CITY" default:"New York"`
	AssetsDir   string `envconfig:"ASSETS_DIR" default:"./assets"`

	Server  Server
	Breaker Breaker
	Redis   Redis
	Session Session

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-widget.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/weather-widget-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (c Config) GrpcAddress() string {
	return net.JoinHostPort(c.Server.Host, c.Server.GrpcPort)
}

func (c Config) RedisAddress() string {
	return net.JoinHostPort(c.Redis.Host, c.Redis.Port)
}

// String hides the API key when the config is logged.
func (c Config) String() string {
	masked := c
	if masked.OpenWeatherMapAPIKey != "" {
		masked.OpenWeatherMapAPIKey = "***"
	}
	type plain Config
	return fmt.Sprintf("%+v", plain(masked))
}
