// URL-pairing: вендоры часто дублируют файловую колонку колонкой
// со ссылкой ("Image File 1" + "Image File 1 URL"). Дубликаты
// исключаются из классификации ролей и подбираются здесь — ссылки
// нужны классификатору содержимого картинок.

package columns

import "strings"

// urlSuffixes — токены, помечающие колонку как URL-вариант.
var urlSuffixes = []string{"url", "link", "href", "hyperlink"}

// urlVariantBase возвращает имя базовой колонки, если name выглядит
// как её URL-дубликат: "Image File 1 URL" -> ("Image File 1", true).
func urlVariantBase(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)

	for _, suffix := range urlSuffixes {
		for _, sep := range []string{" ", "_", "-"} {
			tail := sep + suffix
			if strings.HasSuffix(lower, tail) {
				return strings.TrimSpace(trimmed[:len(trimmed)-len(tail)]), true
			}
		}
	}
	return "", false
}

// IsURLVariant сообщает, что колонка — URL-дубликат другой колонки.
func IsURLVariant(name string) bool {
	_, ok := urlVariantBase(name)
	return ok
}

// PairURLColumns строит карту база -> URL-колонка по заголовку.
//
// Пары ищутся только среди реально существующих базовых колонок;
// одинокая "Product URL" без базы парой не считается.
func PairURLColumns(names []string) map[string]string {
	byLower := make(map[string]string, len(names))
	for _, n := range names {
		byLower[strings.ToLower(strings.TrimSpace(n))] = n
	}

	pairs := make(map[string]string)
	for _, n := range names {
		base, ok := urlVariantBase(n)
		if !ok {
			continue
		}
		if original, exists := byLower[strings.ToLower(base)]; exists {
			pairs[original] = n
		}
	}
	return pairs
}
