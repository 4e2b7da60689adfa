package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	Tasks struct {
		BookingExpiryInterval time.Duration
		BookingExpiryGrace    time.Duration
	}

	HTTPServer struct {
		Port                      string
		RequestTimeout            time.Duration
		RateLimiterQPS            int  // пополнение корзины клиента в секунду
		RateLimiterBurst          int  // емкость корзины клиента
		RateLimiterTrustForwarded bool // ключ лимита из X-Forwarded-For, только за доверенным прокси
		PprofEnabled              bool
		PprofPort                 string
		CORSAllowedOrigins        []string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Migrations struct {
		Auto bool
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Auth struct {
		JWTSecret string
	}

	Schedule struct {
		Timezone string
		Location *time.Location
	}

	GRPC struct {
		HealthPort string
	}

	Log struct {
		Level string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		BookingStatusChanged BookingStatusChanged
	}

	BookingStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks      Tasks
		Server     HTTPServer
		Database   Database
		Migrations Migrations
		Redis      Redis
		Auth       Auth
		Schedule   Schedule
		GRPC       GRPC
		Log        Log
		Kafka      Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	expiryInterval, err := osGetEnvDuration("BACKGROUND_BOOKING_EXPIRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	expiryGrace, err := osGetEnvDuration("BACKGROUND_BOOKING_EXPIRY_GRACE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	statusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_BOOKING_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterTrustForwarded, err := osGetBool("MIDDLEWARE_RATE_LIMIT_TRUST_FORWARDED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrationsAuto, err := osGetBool("MIGRATIONS_AUTO")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	timezone := os.Getenv("SCHEDULE_TIMEZONE")
	location, err := loadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			BookingExpiryInterval: expiryInterval,
			BookingExpiryGrace:    expiryGrace,
		},
		Server: HTTPServer{
			Port:                      os.Getenv("PORT"),
			RequestTimeout:            requestTimeout,
			RateLimiterQPS:            rateLimiterQPS,
			RateLimiterBurst:          rateLimiterBurst,
			RateLimiterTrustForwarded: rateLimiterTrustForwarded,
			PprofEnabled:              pprofEnabled,
			PprofPort:                 os.Getenv("PPROF_PORT"),
			CORSAllowedOrigins:        osGetList("CORS_ALLOWED_ORIGINS"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Migrations: Migrations{
			Auto: migrationsAuto,
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Auth: Auth{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Schedule: Schedule{
			Timezone: timezone,
			Location: location,
		},
		GRPC: GRPC{
			HealthPort: os.Getenv("GRPC_HEALTH_PORT"),
		},
		Log: Log{
			Level: os.Getenv("LOG_LEVEL"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				BookingStatusChanged: BookingStatusChanged{
					ProcessTimeout: statusChangedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.GRPC.HealthPort == "" {
		return errors.New("GRPC_HEALTH_PORT is required")
	}

	if cfg.Tasks.BookingExpiryInterval == time.Duration(0) {
		return errors.New("BACKGROUND_BOOKING_EXPIRY_INTERVAL is required")
	}
	if cfg.Tasks.BookingExpiryGrace < 0 {
		return errors.New("BACKGROUND_BOOKING_EXPIRY_GRACE must not be negative")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.BookingStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_BOOKING_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

// loadLocation - пустое имя означает локальную зону процесса.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone SCHEDULE_TIMEZONE=%q: %w", name, err)
	}
	return location, nil
}

func osGetList(s string) []string {
	val := os.Getenv(s)
	if val == "" {
		return nil
	}

	parts := strings.Split(val, ",")
	res := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
