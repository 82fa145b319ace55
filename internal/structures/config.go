package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

type GiftConfig struct {
	Slug       string `yaml:"slug" validate:"required"`
	Title      string `yaml:"title" validate:"required"`
	StartDate  string `yaml:"startDate" validate:"required|date"`
	UnlockHour int    `yaml:"unlockHour" validate:"min:0|max:23"`
	TotalNotes int    `yaml:"totalNotes" validate:"required|min:1|max:365"`
}

type PushConfig struct {
	VapidSubject    string        `yaml:"vapidSubject"`
	VapidPublicKey  string        `yaml:"vapidPublicKey"`
	VapidPrivateKey string        `yaml:"vapidPrivateKey"`
	DispatchSecret  string        `yaml:"dispatchSecret"`
	TTL             time.Duration `yaml:"ttl"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Version   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Database  DatabaseConfig `yaml:"database"`
	Gift      GiftConfig     `yaml:"gift"`
	Push      PushConfig     `yaml:"push"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
