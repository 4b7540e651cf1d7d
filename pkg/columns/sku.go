// Поиск SKU колонки: точное совпадение по списку синонимов,
// ручной ввод оператора всегда приоритетен.

package columns

import (
	"fmt"
	"strings"
)

// skuCandidates — все правдоподобные имена SKU колонки у вендоров.
// Сверка case-insensitive, побеждает первый кандидат найденный в заголовке.
var skuCandidates = []string{
	"sku", "item number", "item_number", "item num", "item_num",
	"model number", "model_number", "model no", "model_no",
	"product code", "product_code", "product number", "product_number",
	"part number", "part_number", "part no", "part_no",
	"item code", "item_code", "article number", "article_number",
	"catalog number", "catalog_number", "material number", "material_number",
	"style number", "style_number", "style no", "style_no",
	"upc", "gtin", "barcode", "bar code",
	"product id", "product_id", "item id", "item_id",
	"sku number", "sku_number", "sku no", "sku_no",
	"reference", "ref", "code", "identifier",
	"asin", "mfg part", "mfg_part", "manufacturer part",
	"vendor sku", "vendor_sku", "supplier sku", "supplier_sku",
}

// DetectSKUColumn возвращает первую колонку, чьё lowercase имя совпадает
// с известным кандидатом. Пустая строка — ничего не нашли (не ошибка:
// оператор может указать колонку руками).
func DetectSKUColumn(names []string) string {
	lowerMap := make(map[string]string, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if _, exists := lowerMap[key]; !exists {
			lowerMap[key] = n
		}
	}

	for _, cand := range skuCandidates {
		if original, ok := lowerMap[cand]; ok {
			return original
		}
	}
	return ""
}

// ResolveSKUColumn определяет финальную SKU колонку перед генерацией.
//
// manual — ввод оператора, сверяется с реальными заголовками
// case-insensitive. Пустой manual — автодетект. Если колонку так и
// не нашли, это конфигурационная ошибка: генерация не стартует.
func ResolveSKUColumn(manual string, names []string) (string, error) {
	if manual != "" {
		for _, n := range names {
			if n == manual {
				return n, nil
			}
		}
		lower := strings.ToLower(strings.TrimSpace(manual))
		for _, n := range names {
			if strings.ToLower(strings.TrimSpace(n)) == lower {
				return n, nil
			}
		}
		return "", fmt.Errorf("sku column '%s' not found among %d columns", manual, len(names))
	}

	if auto := DetectSKUColumn(names); auto != "" {
		return auto, nil
	}
	return "", fmt.Errorf("no sku column detected; specify one explicitly")
}
