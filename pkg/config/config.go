// Package config описывает config.yaml генератора ассетов.
//
// Все настройки приложения живут в одном YAML файле: нейминг вендора,
// vision модели, пороги классификатора, опциональный S3 источник картинок.
// Значения вида ${VAR} подставляются из окружения при загрузке.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
type AppConfig struct {
	Naming        NamingConfig            `yaml:"naming"`
	Input         InputConfig             `yaml:"input"`
	Columns       map[string]ColumnRule   `yaml:"columns"`
	Models        ModelsConfig            `yaml:"models"`
	Vision        VisionConfig            `yaml:"vision"`
	S3            S3Config                `yaml:"s3"`
	Resize        ResizeConfig            `yaml:"resize"`
	Manufacturers ManufacturersConfig     `yaml:"manufacturers"`
	App           AppSpecific             `yaml:"app"`
}

// NamingConfig — параметры синтеза кодов и путей.
//
// BrandFolder по умолчанию выводится из имени вендора
// (lowercase, пробелы убраны), см. mfg.DefaultBrandFolder.
type NamingConfig struct {
	Vendor      string `yaml:"vendor"`       // Имя вендора, например "AFX Lighting"
	Prefix      string `yaml:"prefix"`       // Manufacturer ID, например "2605"
	BrandFolder string `yaml:"brand_folder"` // Папка бренда, например "afx"
}

// InputConfig — выбор листа/строки заголовка/SKU колонки.
// Всё перекрывается флагами CLI; ручной ввод оператора всегда приоритетен.
type InputConfig struct {
	Sheet     string `yaml:"sheet"`      // Имя листа (пусто = единственный лист)
	HeaderRow int    `yaml:"header_row"` // 1-based, допустимо 1..5. 0 = дефолт (2)
	SKUColumn string `yaml:"sku_column"` // Имя SKU колонки (пусто = автодетект)
}

// ColumnRule — перекрытие для конкретной колонки, ключ = имя колонки.
type ColumnRule struct {
	Keep      *bool  `yaml:"keep"`       // false = исключить из подтверждённого набора
	Role      string `yaml:"role"`       // image | pdf | video (принудительная роль)
	MediaType string `yaml:"media_type"` // lifestyle | angle | informational | dimension | swatch | detail
}

// ModelsConfig — настройки vision моделей.
type ModelsConfig struct {
	DefaultVision string              `yaml:"default_vision"` // Алиас по умолчанию
	Definitions   map[string]ModelDef `yaml:"definitions"`    // Словарь определений моделей
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string  `yaml:"provider"`   // "openai", "zai", "deepseek", "openrouter"
	ModelName   string  `yaml:"model_name"` // Реальное имя в API
	APIKey      string  `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string  `yaml:"base_url"`   // Для non-OpenAI провайдеров
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"` // Например "30s"
}

// VisionConfig — пороги и лимиты двухступенчатого классификатора.
type VisionConfig struct {
	Threshold    int    `yaml:"threshold"`     // Stage-1 confidence ниже которого зовём модель
	RateLimit    int    `yaml:"rate_limit"`    // Запросов к модели в минуту
	BurstLimit   int    `yaml:"burst_limit"`   // Burst для rate limiter
	FetchTimeout string `yaml:"fetch_timeout"` // Timeout скачивания картинки
	MaxWidth     int    `yaml:"max_width"`     // Ширина перекодировки перед отправкой модели
	Quality      int    `yaml:"quality"`       // JPEG качество перекодировки
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *VisionConfig) GetDefaults() VisionConfig {
	result := *c

	if result.Threshold == 0 {
		result.Threshold = 65 // ниже — эвристике не верим
	}
	if result.RateLimit == 0 {
		result.RateLimit = 60
	}
	if result.BurstLimit == 0 {
		result.BurstLimit = 3
	}
	if result.FetchTimeout == "" {
		result.FetchTimeout = "15s"
	}
	if result.MaxWidth == 0 {
		result.MaxWidth = 800
	}
	if result.Quality == 0 {
		result.Quality = 75
	}

	return result
}

// FetchTimeoutDuration парсит FetchTimeout, с фолбэком на 15 секунд.
func (c *VisionConfig) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// S3Config — опциональный источник картинок (ссылки вида s3://bucket/key).
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
}

// Enabled сообщает, настроен ли S3 источник.
func (c *S3Config) Enabled() bool {
	return c.Endpoint != ""
}

// ResizeConfig — настройки утилиты resize-with-padding.
type ResizeConfig struct {
	TargetSize int `yaml:"target_size"`
	Quality    int `yaml:"quality"`
}

// GetDefaults возвращает дефолты ресайзера (1000x1000, качество 95).
func (c *ResizeConfig) GetDefaults() ResizeConfig {
	result := *c
	if result.TargetSize == 0 {
		result.TargetSize = 1000
	}
	if result.Quality == 0 {
		result.Quality = 95
	}
	return result
}

// ManufacturersConfig — справочник Brand -> Manufacturer ID.
type ManufacturersConfig struct {
	Path string `yaml:"path"` // Путь к Manufacturer_ID_s.xlsx. Пусто = без подсказок
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug bool `yaml:"debug"`
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет согласованность настроек.
//
// Нейминг здесь не проверяется: prefix/brand_folder могут прийти позже
// из флагов или справочника производителей, их проверяет генерация.
func (c *AppConfig) validate() error {
	if c.Input.HeaderRow < 0 || c.Input.HeaderRow > 5 {
		return fmt.Errorf("input.header_row must be in 1..5, got %d", c.Input.HeaderRow)
	}

	if c.Models.DefaultVision != "" {
		if _, ok := c.Models.Definitions[c.Models.DefaultVision]; !ok {
			return fmt.Errorf("default_vision model '%s' is not defined in definitions", c.Models.DefaultVision)
		}
	}

	// S3 либо не настроен совсем, либо настроен полностью
	if c.S3.Enabled() {
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
		}
	}

	for name, rule := range c.Columns {
		switch rule.Role {
		case "", "image", "pdf", "video":
		default:
			return fmt.Errorf("columns[%s].role: unknown role '%s'", name, rule.Role)
		}
		switch rule.MediaType {
		case "", "lifestyle", "angle", "informational", "dimension", "swatch", "detail":
		default:
			return fmt.Errorf("columns[%s].media_type: unknown media type '%s'", name, rule.MediaType)
		}
	}

	return nil
}

// Helper методы для удобства доступа

// GetVisionModel возвращает конфигурацию модели по умолчанию или по имени.
func (c *AppConfig) GetVisionModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultVision
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}

// ValidPrefix проверяет что manufacturer prefix алфавитно-цифровой и непустой.
func ValidPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	for _, ch := range prefix {
		ok := (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		if !ok {
			return false
		}
	}
	return true
}

// ValidBrandFolder проверяет что папка бренда — lowercase токен без пробелов.
func ValidBrandFolder(folder string) bool {
	if folder == "" {
		return false
	}
	return folder == strings.ToLower(folder) && !strings.ContainsAny(folder, " \t/")
}
