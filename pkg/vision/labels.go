// Package vision классифицирует содержимое товарных картинок.
//
// Двухступенчатый каскад:
//
//	Stage 1: пиксельные эвристики (мгновенно, CPU, без сети).
//	         Ловит очевидные 80%: товар на белом, свотч, инфографика.
//	Stage 2: vision модель (только для неуверенных случаев).
//	         Картинка уходит как base64, ответ нормализуется
//	         обратно в каноничную метку.
//
// Никаких тяжёлых моделей и GPU — работает на любом CPU сервере.
package vision

import "strings"

// Label — семантическая метка содержимого картинки.
// Значения совпадают с mediatype целевой схемы.
type Label string

const (
	LabelMain          Label = "main_product_image"
	LabelLifestyle     Label = "lifestyle"
	LabelInformational Label = "informational"
	LabelDimension     Label = "dimension"
	LabelSwatch        Label = "swatch"
	LabelDetail        Label = "detail"

	// Спец-метки для ссылок, не являющихся картинками
	LabelSpecSheet Label = "spec_sheet"
	LabelVideo     Label = "video"
)

// labelSynonyms — таблица нормализации свободного ответа модели.
// Порядок важен: подстрочный поиск идёт сверху вниз, более
// специфичные ключи стоят раньше.
var labelSynonyms = []struct {
	key   string
	label Label
}{
	{"main product image", LabelMain},
	{"main product", LabelMain},
	{"product image", LabelMain},
	{"lifestyle", LabelLifestyle},
	{"informational", LabelInformational},
	{"infographic", LabelInformational},
	{"dimensions", LabelDimension},
	{"dimension", LabelDimension},
	{"technical", LabelDimension},
	{"diagram", LabelDimension},
	{"colour swatch", LabelSwatch},
	{"color swatch", LabelSwatch},
	{"swatch", LabelSwatch},
	{"close up", LabelDetail},
	{"angle", LabelDetail},
	{"detail", LabelDetail},
}

// NormalizeLabel приводит свободный ответ модели к каноничной метке.
//
// Сначала точное совпадение, затем поиск подстроки; всё нераспознанное
// консервативно превращается в detail.
func NormalizeLabel(raw string) Label {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, "_", " ")
	cleaned = strings.ReplaceAll(cleaned, "-", " ")

	for _, s := range labelSynonyms {
		if cleaned == s.key {
			return s.label
		}
	}
	for _, s := range labelSynonyms {
		if strings.Contains(cleaned, s.key) {
			return s.label
		}
	}
	return LabelDetail
}
