package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultDataFile       = "crm_data.json"
	defaultAIModel        = "gemini-2.0-flash"
	defaultAITimeout      = 30 * time.Second
	defaultPanelAddr      = ":8000"
	defaultBackupInterval = 24 * time.Hour
)

type Config struct {
	Environment    string        `yaml:"env" envconfig:"ENV"`
	LogLevel       string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	DataFile       string        `yaml:"data_file" envconfig:"CRM_DATA_FILE"`
	TelegramToken  string        `yaml:"telegram_token" envconfig:"TELEGRAM_TOKEN"`
	AIKey          string        `yaml:"ai_key" envconfig:"GOOGLE_AI_API_KEY"`
	AIModel        string        `yaml:"ai_model" envconfig:"AI_MODEL"`
	AITimeout      time.Duration `yaml:"ai_timeout" envconfig:"AI_TIMEOUT"`
	PanelAddr      string        `yaml:"panel_addr" envconfig:"PANEL_ADDR"`
	BackupDir      string        `yaml:"backup_dir" envconfig:"BACKUP_DIR"`
	BackupInterval time.Duration `yaml:"backup_interval" envconfig:"BACKUP_INTERVAL"`
}

// Load читает .env, затем YAML из CONFIG_FILE (если задан), затем переменные окружения.
// Обязательные поля проверяются отдельно для каждого бинарника (ValidateBot).
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// Устанавливаем дефолтные значения
func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.DataFile == "" {
		c.DataFile = defaultDataFile
	}
	if c.AIModel == "" {
		c.AIModel = defaultAIModel
	}
	if c.AITimeout <= 0 {
		c.AITimeout = defaultAITimeout
	}
	if c.PanelAddr == "" {
		c.PanelAddr = defaultPanelAddr
	}
	if c.BackupInterval <= 0 {
		c.BackupInterval = defaultBackupInterval
	}
}

// ValidateBot проверяет поля, без которых бот не стартует
func (c *Config) ValidateBot() error {
	var errs []error
	if strings.TrimSpace(c.TelegramToken) == "" {
		errs = append(errs, fmt.Errorf("TELEGRAM_TOKEN is required but not set"))
	}
	if strings.TrimSpace(c.AIKey) == "" {
		errs = append(errs, fmt.Errorf("GOOGLE_AI_API_KEY is required but not set"))
	}
	return errors.Join(errs...)
}
