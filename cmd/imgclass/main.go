// imgclass — standalone утилита классификации картинок.
//
// Принимает ссылки (http/https, s3://) или локальные файлы и печатает
// метку, уверенность и ступень каскада. Удобно для отладки порогов
// эвристики без полного прогона генератора.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/factory"
	"github.com/ilkoid/assetgen/pkg/llm"
	"github.com/ilkoid/assetgen/pkg/s3storage"
	"github.com/ilkoid/assetgen/pkg/utils"
	"github.com/ilkoid/assetgen/pkg/vision"
)

var (
	configFlag  = flag.String("config", "config.yaml", "Path to config.yaml")
	modelFlag   = flag.String("model", "", "Vision model alias from config")
	noModelFlag = flag.Bool("heuristic-only", false, "Stage 1 only, never call the model")
	detailsFlag = flag.Bool("details", false, "Print extracted signals")
)

func main() {
	flag.Parse()

	// === ИНИЦИАЛИЗАЦИЯ ЛОГГЕРА ===
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger init failed: %v\n", err)
	}
	defer utils.Close()

	refs := flag.Args()
	if len(refs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: imgclass [flags] <ref> [<ref> ...]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		utils.Warn("config not loaded, heuristic only", "path", *configFlag, "error", err)
		cfg = &config.AppConfig{}
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		utils.Error("Initialization failed", "error", err)
		fmt.Fprintf(os.Stderr, "Initialization failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer utils.SetupGracefulShutdown(cancel)()

	exitCode := 0
	for _, ref := range refs {
		res := classifier.ClassifyRef(ctx, ref)

		fmt.Printf("%-50s %-20s %3d%%  [%s]\n", ref, res.Label, res.Confidence, res.Stage)
		if res.Stage == vision.StageError {
			exitCode = 1
		}
		if *detailsFlag {
			printDetails(res.Details)
		}
	}
	if exitCode != 0 {
		utils.Close()
		os.Exit(exitCode)
	}
}

// buildClassifier собирает каскад: провайдер опционален, S3 — по конфигу.
func buildClassifier(cfg *config.AppConfig) (*vision.Classifier, error) {
	var provider llm.Provider
	if !*noModelFlag {
		if modelDef, ok := cfg.GetVisionModel(*modelFlag); ok {
			p, err := factory.NewLLMProvider(modelDef)
			if err != nil {
				return nil, err
			}
			provider = p
		} else {
			utils.Warn("vision model not configured, stage 2 disabled", "model", *modelFlag)
		}
	}

	fetcher := &vision.RefFetcher{
		HTTP: vision.NewHTTPFetcher(cfg.Vision.FetchTimeoutDuration()),
	}
	if cfg.S3.Enabled() {
		store, err := s3storage.New(cfg.S3)
		if err != nil {
			return nil, err
		}
		fetcher.Store = store
	}

	return vision.New(provider, fetcher, cfg.Vision), nil
}

func printDetails(details map[string]string) {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("    %-14s %s\n", k, details[k])
	}
}
