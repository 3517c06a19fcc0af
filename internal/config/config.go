package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Address     string `envconfig:"SKYCAST_SERVER_ADDR" default:":8080"`
	ReadTimeout int    `envconfig:"SKYCAST_SERVER_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Host string `envconfig:"REDIS_HOST" default:"localhost"`
	Port string `envconfig:"REDIS_PORT" default:"6379"`
	DB   int    `envconfig:"REDIS_DB" default:"0"`
}

type Config struct {
	WeatherAPIKey string `envconfig:"WEATHER_API_KEY" required:"true"`
	WeatherAPIURL string `envconfig:"WEATHER_API_URL" default:"https://api.weatherapi.com/v1/forecast.json"`

	DefaultCity string `envconfig:"SKYCAST_DEFAULT_CITY" default:"Kanpur"`
	DBSource    string `envconfig:"SKYCAST_DB_SOURCE" default:"./skycast.db"`
	CityListKey string `envconfig:"SKYCAST_CITYLIST_KEY" default:"skycast:comparison_cities"`
	FetchLimit  int    `envconfig:"SKYCAST_FETCH_LIMIT" default:"4"`
	RefreshSpec string `envconfig:"SKYCAST_REFRESH_SPEC" default:"@every 15m"`
	ThemeSpec   string `envconfig:"SKYCAST_THEME_SPEC" default:"@hourly"`
	StaticDir   string `envconfig:"SKYCAST_STATIC_DIR" default:""`

	Server  Server
	Breaker Breaker
	Redis   Redis

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/skycast.log"`
	AuditLogPath string `envconfig:"AUDIT_LOG_PATH" default:"./log/skycast-audit.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
