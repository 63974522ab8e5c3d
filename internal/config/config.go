package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string  `yaml:"env" env:"ENV" env-default:"local"`
	Storage    Storage `yaml:"storage"`
	Mailer     Mailer  `yaml:"mailer"`
	Booking    Booking `yaml:"booking"`
	HTTPServer `yaml:"http_server"`
}

type Storage struct {
	// Driver selects the store implementation: "memory" or "postgres".
	Driver   string   `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Database Database `yaml:"database"`
}

type Database struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env-default:"seatbooker"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Mailer struct {
	Domain string `yaml:"domain" env:"MAILGUN_DOMAIN"`
	APIKey string `yaml:"api_key" env:"MAILGUN_API_KEY"`
	Sender string `yaml:"sender" env:"MAILGUN_SENDER"`
}

type Booking struct {
	// PendingTTL is how long an unpaid booking stays resumable before the
	// expiry sweep cancels it.
	PendingTTL time.Duration `yaml:"pending_ttl" env-default:"30m"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
