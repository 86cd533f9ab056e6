// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQConnection      `yaml:"rabbitmq_connection"`
	HTTPServer              `yaml:"http_server"`
	Session                 `yaml:"session"`
	Billing                 `yaml:"billing"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis,
// где хранятся сессии и кэш каталога занятий.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// RabbitMQConnection структура для настройки подключения к rabbitmq,
// куда публикуются квитанции об оплате.
type RabbitMQConnection struct {
	AddressRabbitMQ string        `yaml:"addressrabbitmq"`
	RetriesRabbitMQ int           `yaml:"retries" env-default:"5"`
	RetryDelay      time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Session параметры серверных сессий: имя cookie с непрозрачным токеном
// и время жизни записи в redis.
type Session struct {
	CookieName string        `yaml:"cookie_name" env-default:"ef_session"`
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"24h"`
}

// Billing параметры расчёта стоимости: ставка налога и цена месячного абонемента.
type Billing struct {
	TaxRate          float64 `yaml:"tax_rate" env-default:"0.13"`
	MonthlyPlanPrice float64 `yaml:"monthly_plan_price" env-default:"75"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
// Останавливает процесс, если файл отсутствует или не читается.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
