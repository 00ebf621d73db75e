package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Order    OrderConfig    `mapstructure:"order"`
}

type ServerConfig struct {
	AppEnv   string `mapstructure:"appEnv"`
	HTTPPort string `mapstructure:"httpPort"`
}

type LoggerConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	DisableCaller     bool   `mapstructure:"disableCaller"`
	DisableStacktrace bool   `mapstructure:"disableStacktrace"`
}

type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbName"`
	SSLMode         string `mapstructure:"sslMode"`
	MaxOpenConns    int    `mapstructure:"maxOpenConns"`
	MaxIdleConns    int    `mapstructure:"maxIdleConns"`
	ConnMaxLifetime int    `mapstructure:"connMaxLifetimeSeconds"`
	ConnMaxIdleTime int    `mapstructure:"connMaxIdleTimeSeconds"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"groupID"`
}

type SweepConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"intervalSeconds"`
}

type OrderConfig struct {
	IdempotencyTTLSeconds int `mapstructure:"idempotencyTTLSeconds"`
}

func (s SweepConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

func (o OrderConfig) IdempotencyTTL() time.Duration {
	return time.Duration(o.IdempotencyTTLSeconds) * time.Second
}

// Load reads config.yaml from path and overlays environment variables.
func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.BindEnv("server.appEnv", "APP_ENV")
	viper.BindEnv("server.httpPort", "HTTP_PORT")
	viper.BindEnv("postgres.host", "POSTGRES_HOST")
	viper.BindEnv("postgres.port", "POSTGRES_PORT")
	viper.BindEnv("postgres.user", "POSTGRES_USER")
	viper.BindEnv("postgres.password", "POSTGRES_PASSWORD")
	viper.BindEnv("postgres.dbName", "POSTGRES_DB")
	viper.BindEnv("postgres.sslMode", "POSTGRES_SSLMODE")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("kafka.topic", "KAFKA_TOPIC_ORDERS")
	viper.BindEnv("kafka.groupID", "KAFKA_GROUP_INVENTORY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.appEnv", "development")
	viper.SetDefault("server.httpPort", "8080")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.disableCaller", false)
	viper.SetDefault("logger.disableStacktrace", true)
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.user", "restopos")
	viper.SetDefault("postgres.password", "restopos")
	viper.SetDefault("postgres.dbName", "restopos_inventory")
	viper.SetDefault("postgres.sslMode", "disable")
	viper.SetDefault("postgres.maxOpenConns", 10)
	viper.SetDefault("postgres.maxIdleConns", 5)
	viper.SetDefault("postgres.connMaxLifetimeSeconds", 300)
	viper.SetDefault("postgres.connMaxIdleTimeSeconds", 60)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "orders.events")
	viper.SetDefault("kafka.groupID", "inventory")
	viper.SetDefault("sweep.enabled", true)
	viper.SetDefault("sweep.intervalSeconds", 300)
	viper.SetDefault("order.idempotencyTTLSeconds", 86400)
}
