package app

import (
	"context"

	"github.com/ilkoid/assetgen/pkg/columns"
	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/table"
	"github.com/ilkoid/assetgen/pkg/utils"
	"github.com/ilkoid/assetgen/pkg/vision"
)

// applyColumnRules накладывает перекрытия из config.yaml на профили.
//
// Правило с keep: false убирает колонку; role/media_type перекрывают
// результат классификатора. Правило с ролью для колонки, которую
// классификатор вообще не увидел, добавляет профиль вручную —
// оператор знает свои данные лучше лексиконов.
func applyColumnRules(profiles []columns.Profile, t *table.SourceTable, rules map[string]config.ColumnRule) []columns.Profile {
	if len(rules) == 0 {
		return profiles
	}

	seen := make(map[string]bool, len(profiles))
	out := profiles[:0]
	for _, p := range profiles {
		seen[p.Name] = true

		rule, ok := rules[p.Name]
		if !ok {
			out = append(out, p)
			continue
		}
		if rule.Keep != nil && !*rule.Keep {
			utils.Debug("column dropped by config rule", "column", p.Name)
			continue
		}
		if rule.Role != "" {
			p.Role = columns.Role(rule.Role)
			p.Confidence = 100
			p.Evidence = "config override"
		}
		if rule.MediaType != "" {
			p.MediaType = rule.MediaType
		}
		out = append(out, p)
	}

	// Колонки, которых классификатор не увидел, но конфиг настаивает
	for name, rule := range rules {
		if seen[name] || rule.Role == "" {
			continue
		}
		idx := t.ColumnIndex(name)
		if idx < 0 {
			utils.Warn("config rule for unknown column", "column", name)
			continue
		}
		out = append(out, columns.Profile{
			Name:       name,
			Samples:    t.ColumnValues(idx, columns.SampleLimit),
			Role:       columns.Role(rule.Role),
			MediaType:  rule.MediaType,
			Confidence: 100,
			Evidence:   "config override",
		})
	}

	return out
}

// enrichMediaTypes уточняет media type картиночных колонок через
// vision классификатор.
//
// Работает только для колонок без именной подсказки (тип остался
// дефолтным): скачивается первый доступный семпл (через URL-пару
// колонки), результат каскада становится media type всей колонки.
// Ошибки не фатальны — колонка остаётся с дефолтным типом.
func (p *Pipeline) enrichMediaTypes(ctx context.Context, t *table.SourceTable, profiles []columns.Profile) {
	pairs := columns.PairURLColumns(t.ColumnNames())

	for i := range profiles {
		prof := &profiles[i]
		if prof.Role != columns.RoleImage {
			continue
		}
		if prof.MediaType != "" && prof.MediaType != columns.DefaultMediaType {
			continue
		}

		ref := sampleRef(t, prof.Name, pairs)
		if ref == "" {
			continue
		}

		res := p.classifier.ClassifyRef(ctx, ref)
		if res.Stage == vision.StageError {
			utils.Warn("vision enrichment failed", "column", prof.Name, "ref", ref, "error", res.Details["error"])
			continue
		}

		mt := mediaTypeForLabel(res.Label)
		if mt == "" {
			continue
		}
		utils.Info("media type enriched by vision",
			"column", prof.Name,
			"media_type", mt,
			"stage", string(res.Stage),
			"confidence", res.Confidence)
		prof.MediaType = mt
	}
}

// sampleRef возвращает скачиваемую ссылку-семпл для колонки:
// значение её URL-пары либо собственный семпл, если он сам ссылка.
func sampleRef(t *table.SourceTable, column string, pairs map[string]string) string {
	if urlCol, ok := pairs[column]; ok {
		if idx := t.ColumnIndex(urlCol); idx >= 0 {
			if vals := t.ColumnValues(idx, 1); len(vals) > 0 {
				return vals[0]
			}
		}
	}

	idx := t.ColumnIndex(column)
	if idx < 0 {
		return ""
	}
	for _, v := range t.ColumnValues(idx, 5) {
		if isFetchableRef(v) {
			return v
		}
	}
	return ""
}

func isFetchableRef(v string) bool {
	for _, prefix := range []string{"http://", "https://", "s3://"} {
		if len(v) > len(prefix) && v[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// mediaTypeForLabel переводит метку каскада в media type колонки.
// main_product_image не является media type: главную картинку строки
// выбирает билдер, колонке тип не навязываем.
func mediaTypeForLabel(l vision.Label) string {
	switch l {
	case vision.LabelLifestyle:
		return "lifestyle"
	case vision.LabelInformational:
		return "informational"
	case vision.LabelDimension:
		return "dimension"
	case vision.LabelSwatch:
		return "swatch"
	case vision.LabelDetail:
		return "detail"
	default:
		return ""
	}
}
