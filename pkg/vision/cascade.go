package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ilkoid/assetgen/pkg/columns"
	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/llm"
	"github.com/ilkoid/assetgen/pkg/utils"
)

// Stage — ступень каскада, давшая ответ.
type Stage string

const (
	StageHeuristic Stage = "heuristic" // пиксельные эвристики
	StageExternal  Stage = "external"  // vision модель
	StageError     Stage = "error"     // классификация не удалась
)

// Result — итог классификации одной картинки.
type Result struct {
	Label      Label
	Confidence int // 0-100
	Stage      Stage
	Details    map[string]string
}

// visionPrompt — инструкция vision модели для Stage 2.
// Ответ — ровно одна метка, всё прочее нормализует NormalizeLabel.
const visionPrompt = `You are classifying a product image for an e-commerce asset library.

Look at this image and pick EXACTLY ONE label:

  main_product_image   -- single product on white or very light background
  lifestyle            -- product shown in a room or real-world scene
  informational        -- infographic with text, icons, charts
  dimension            -- technical drawing showing measurements
  swatch               -- a colour or material sample block
  detail               -- close-up, angle shot, or anything that does not fit above

Respond with ONLY the label, nothing else.`

// Classifier — двухступенчатый каскад.
//
// Provider == nil отключает Stage 2: неуверенные случаи остаются
// с эвристической меткой ниже порога (режим "только эвристика").
type Classifier struct {
	provider llm.Provider
	fetcher  Fetcher
	limiter  *rate.Limiter

	threshold int
	maxWidth  int
	quality   int
}

// New создает классификатор с настройками из конфига.
func New(provider llm.Provider, fetcher Fetcher, cfg config.VisionConfig) *Classifier {
	cfg = cfg.GetDefaults()

	return &Classifier{
		provider:  provider,
		fetcher:   fetcher,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit)), cfg.BurstLimit),
		threshold: cfg.Threshold,
		maxWidth:  cfg.MaxWidth,
		quality:   cfg.Quality,
	}
}

// ClassifyRef скачивает содержимое по ссылке и классифицирует его.
//
// PDF и видео распознаются до пиксельного анализа: для них vision
// анализ невозможен, метка ставится по расширению/Content-Type.
// Любая ошибка превращается в Result{detail, 0, error} — вызывающий
// код никогда не падает из-за одной битой ссылки.
func (c *Classifier) ClassifyRef(ctx context.Context, ref string) Result {
	lower := strings.ToLower(ref)

	// Видео определяется по самой ссылке, скачивание не нужно
	if columns.IsVideoRef(ref) {
		return Result{
			Label: LabelVideo, Confidence: 95, Stage: StageHeuristic,
			Details: map[string]string{"note": "video detected from reference"},
		}
	}
	if strings.HasSuffix(lower, ".pdf") {
		return Result{
			Label: LabelSpecSheet, Confidence: 95, Stage: StageHeuristic,
			Details: map[string]string{"note": "pdf detected from extension"},
		}
	}

	data, contentType, err := c.fetcher.Fetch(ctx, ref)
	if err != nil {
		return errorResult(err, map[string]string{"ref": ref})
	}

	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return Result{
			Label: LabelSpecSheet, Confidence: 95, Stage: StageHeuristic,
			Details: map[string]string{"note": "pdf detected from content-type"},
		}
	}

	return c.ClassifyBytes(ctx, data)
}

// ClassifyBytes классифицирует сырые байты картинки.
//
// Stage 1 всегда; Stage 2 — только если уверенность ниже порога
// и модель настроена.
func (c *Classifier) ClassifyBytes(ctx context.Context, data []byte) Result {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return errorResult(fmt.Errorf("decode image: %w", err), nil)
	}

	// --- Stage 1 ---
	sig := ExtractSignals(img)
	label, conf := ClassifySignals(sig)
	details := signalDetails(sig)

	if conf >= c.threshold || c.provider == nil {
		return Result{Label: label, Confidence: conf, Stage: StageHeuristic, Details: details}
	}

	utils.Debug("heuristic uncertain, escalating to vision model",
		"heuristic_label", string(label),
		"heuristic_confidence", conf)

	// --- Stage 2: перекодируем компактным JPEG и зовём модель ---
	jpegData, err := utils.ResizeImage(data, c.maxWidth, c.quality)
	if err != nil {
		return errorResult(fmt.Errorf("prepare image for model: %w", err), details)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return errorResult(fmt.Errorf("rate limiter: %w", err), details)
	}

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
	resp, err := c.provider.Generate(ctx, []llm.Message{{
		Role:    llm.RoleUser,
		Content: visionPrompt,
		Images:  []string{dataURI},
	}})
	if err != nil {
		return errorResult(fmt.Errorf("vision model: %w", err), details)
	}

	raw := strings.ToLower(strings.TrimSpace(resp.Content))
	details["raw_answer"] = raw

	return Result{
		Label:      NormalizeLabel(raw),
		Confidence: 92,
		Stage:      StageExternal,
		Details:    details,
	}
}

// errorResult — единая форма ошибочного исхода: detail / 0 / error.
func errorResult(err error, details map[string]string) Result {
	if details == nil {
		details = map[string]string{}
	}
	details["error"] = err.Error()
	return Result{Label: LabelDetail, Confidence: 0, Stage: StageError, Details: details}
}

// signalDetails раскладывает сигналы в детали результата.
func signalDetails(s Signals) map[string]string {
	return map[string]string{
		"white_pct":     fmt.Sprintf("%.1f", s.WhitePct),
		"light_pct":     fmt.Sprintf("%.1f", s.LightPct),
		"unique_colors": fmt.Sprintf("%d", s.UniqueColors),
		"edge_pct":      fmt.Sprintf("%.1f", s.EdgePct),
		"text_blocks":   fmt.Sprintf("%d", s.TextBlocks),
		"center_light":  fmt.Sprintf("%.1f", s.CenterLight),
		"gray_std":      fmt.Sprintf("%.1f", s.GrayStd),
	}
}
