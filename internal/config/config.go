package config

import (
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Bot       BotConfig
	Reference ReferenceConfig
	Archive   ArchiveConfig
	SMTP      SMTPConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	OpsPort     string
}

type BotConfig struct {
	Token string `validate:"required"`
}

type ReferenceConfig struct {
	URL string `validate:"required,url"`
}

type ArchiveConfig struct {
	Dir   string
	Email string
	Topic string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/bot.log"),
			OpsPort:     getEnv("OPS_PORT", "3000"),
		},
		Bot: BotConfig{
			Token: getEnv("TOKEN", ""),
		},
		Reference: ReferenceConfig{
			URL: getEnv("EXCEL", ""),
		},
		Archive: ArchiveConfig{
			Dir:   getEnv("ORDER_ARCHIVE_DIR", "orders"),
			Email: getEnv("ORDER_ARCHIVE_EMAIL", ""),
			Topic: getEnv("ORDER_EVENTS_TOPIC", "ORDER_FINALIZED"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "OrderIntakeBot"),
		},
	}
}

// Validate fails when a required credential is missing. Absence of the bot
// token or the reference workbook URL is fatal at startup.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.Bot); err != nil {
		return err
	}
	return v.Struct(c.Reference)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
