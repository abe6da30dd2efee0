package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	App      App
	Server   Server
	Database Database
	Auth     Auth
	Redis    Redis
	Logging  Logging
	Grading  Grading
}

type App struct {
	Name    string
	Version string
}

type Server struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
}

type Database struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type Auth struct {
	JWTSecret string
	Issuer    string // empty disables the issuer check
}

type Redis struct {
	Addr           string // empty disables the leaderboard cache
	Password       string
	DB             int
	LeaderboardTTL time.Duration
}

type Logging struct {
	Level  string
	Format string
}

// Grading holds the exam-rule knobs of the marking engine.
type Grading struct {
	// AdvancedVariant is the exam_variant value that turns on multiple-choice partial credit.
	AdvancedVariant string
	// MultiChoiceWrongPenalty is the flat deduction for a wrong pick under the advanced variant.
	MultiChoiceWrongPenalty float64
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("APP_NAME", "phynetix-grading-api")
	viper.SetDefault("APP_VERSION", "1.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LEADERBOARD_CACHE_TTL", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("ADVANCED_VARIANT", "advanced")
	viper.SetDefault("MULTI_CHOICE_WRONG_PENALTY", 2)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.App.Name = viper.GetString("APP_NAME")
	config.App.Version = viper.GetString("APP_VERSION")

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.AutoMigrate = viper.GetBool("DATABASE_AUTO_MIGRATE")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.Issuer = viper.GetString("JWT_ISSUER")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.LeaderboardTTL = viper.GetDuration("LEADERBOARD_CACHE_TTL")

	config.Logging.Level = viper.GetString("LOG_LEVEL")
	config.Logging.Format = viper.GetString("LOG_FORMAT")

	config.Grading.AdvancedVariant = viper.GetString("ADVANCED_VARIANT")
	config.Grading.MultiChoiceWrongPenalty = viper.GetFloat64("MULTI_CHOICE_WRONG_PENALTY")

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	log.Info().
		Str("app", config.App.Name).
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Bool("redis_enabled", config.Redis.Addr != "").
		Str("advanced_variant", config.Grading.AdvancedVariant).
		Msg("Config loaded")
	return &config, nil
}

// DatabaseDSN builds a key/value libpq connection string for the postgres driver.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password,
		c.Database.Name, c.Database.SSLMode)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
