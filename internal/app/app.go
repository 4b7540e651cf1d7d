// Package app собирает компоненты генератора в единый pipeline:
// чтение книги -> классификация колонок -> подтверждение оператором ->
// обогащение vision классификатором -> генерация -> запись результата.
package app

import (
	"errors"
	"fmt"

	"github.com/ilkoid/assetgen/internal/ui"
	"github.com/ilkoid/assetgen/pkg/columns"
	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/factory"
	"github.com/ilkoid/assetgen/pkg/mfg"
	"github.com/ilkoid/assetgen/pkg/s3storage"
	"github.com/ilkoid/assetgen/pkg/utils"
	"github.com/ilkoid/assetgen/pkg/vision"
)

// ErrCancelled — оператор отменил запуск на экране подтверждения.
var ErrCancelled = errors.New("generation cancelled by operator")

// ConfirmFunc — контракт экрана подтверждения колонок.
// Вынесен в тип, чтобы тесты подменяли TUI на заглушку.
type ConfirmFunc func(profiles []columns.Profile, skuOptions []string, skuCurrent string) (ui.Confirmation, error)

// Pipeline — инициализированные компоненты приложения.
type Pipeline struct {
	cfg        *config.AppConfig
	registry   *mfg.Registry
	classifier *vision.Classifier // nil = vision обогащение выключено
	confirm    ConfirmFunc
}

// RunOptions — параметры одного прогона. Флаги CLI перекрывают конфиг.
type RunOptions struct {
	InputPath  string
	OutputPath string
	LogPath    string // пусто = OutputPath + ".log"

	Sheet     string
	HeaderRow int
	SKUColumn string

	Vendor      string
	Prefix      string
	BrandFolder string

	Model    string // алиас vision модели, пусто = default из конфига
	Yes      bool   // пропустить экран подтверждения
	NoVision bool   // выключить vision обогащение
}

// New создает pipeline из конфигурации.
//
// Алгоритм:
//  1. Загружаем справочник производителей (опционально)
//  2. Поднимаем vision классификатор, если модель настроена
//  3. S3 клиент — только если настроен endpoint
func New(cfg *config.AppConfig, opts RunOptions) (*Pipeline, error) {
	registry, err := mfg.Load(cfg.Manufacturers.Path)
	if err != nil {
		return nil, fmt.Errorf("load manufacturers registry: %w", err)
	}

	p := &Pipeline{
		cfg:      cfg,
		registry: registry,
		confirm:  ui.Confirm,
	}

	if opts.NoVision {
		utils.Info("vision enrichment disabled by flag")
		return p, nil
	}

	modelDef, ok := cfg.GetVisionModel(opts.Model)
	if !ok {
		// Не фатально: каскад просто не поднимаем
		utils.Warn("vision model not configured, enrichment disabled", "model", opts.Model)
		return p, nil
	}

	provider, err := factory.NewLLMProvider(modelDef)
	if err != nil {
		return nil, fmt.Errorf("create vision provider: %w", err)
	}

	fetcher := &vision.RefFetcher{
		HTTP: vision.NewHTTPFetcher(cfg.Vision.FetchTimeoutDuration()),
	}
	if cfg.S3.Enabled() {
		store, err := s3storage.New(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("create s3 client: %w", err)
		}
		fetcher.Store = store
	}

	p.classifier = vision.New(provider, fetcher, cfg.Vision)
	utils.Info("vision classifier ready", "model", modelDef.ModelName)
	return p, nil
}
