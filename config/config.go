package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// PublicBaseURL prefixes stored QR paths in API responses.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	DB    DBConfig    `envPrefix:"DB_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
	Kafka KafkaConfig `envPrefix:"KAFKA_"`
	Mail  MailConfig  `envPrefix:"MAIL_"`
	Waha  WahaConfig  `envPrefix:"WAHA_"`
	QR    QRConfig    `envPrefix:"QR_"`
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	Name     string `env:"NAME" envDefault:"wedding"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func (c DBConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.Name + " sslmode=" + c.SSLMode
}

type RedisConfig struct {
	Host        string        `env:"HOST" envDefault:"localhost"`
	Port        string        `env:"PORT" envDefault:"6379"`
	DispatchTTL time.Duration `env:"DISPATCH_TTL" envDefault:"10m"`
}

type KafkaConfig struct {
	Broker      string        `env:"BROKER" envDefault:"localhost:9092"`
	Topic       string        `env:"TOPIC" envDefault:"voucher-jobs"`
	GroupID     string        `env:"GROUP_ID" envDefault:"voucher-issuer"`
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	RetryDelay  time.Duration `env:"RETRY_DELAY" envDefault:"30s"`
}

type MailConfig struct {
	Host     string        `env:"HOST" envDefault:"localhost"`
	Port     int           `env:"PORT" envDefault:"587"`
	Username string        `env:"USERNAME"`
	Password string        `env:"PASSWORD"`
	From     string        `env:"FROM_ADDRESS" envDefault:"noreply@wedding.local"`
	FromName string        `env:"FROM_NAME" envDefault:"Wedding Merchandise"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

type WahaConfig struct {
	BaseURL string        `env:"BASE_URL"`
	Session string        `env:"SESSION" envDefault:"default"`
	APIKey  string        `env:"API_KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type QRConfig struct {
	StorageDir string `env:"STORAGE_DIR" envDefault:"./storage/public"`
	URLPrefix  string `env:"URL_PREFIX" envDefault:"/storage"`
}

// Load reads the whole configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

func MustInitPostgres(cfg DBConfig, log zerolog.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig, log zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Host + ":" + cfg.Port,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	}
}
