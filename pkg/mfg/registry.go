// Package mfg — справочник производителей Brand -> Manufacturer ID.
//
// Источник — XLSX файл c колонками "Brand" и "Manu ID" (первый лист).
// Справочник опционален: без файла генератор работает, просто не
// подсказывает префикс по имени вендора.
package mfg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ilkoid/assetgen/pkg/utils"
)

// Registry — загруженный справочник производителей.
type Registry struct {
	prefixes map[string]string // lowercase brand -> manufacturer id
	vendors  []string          // оригинальные имена брендов, отсортированы
}

// Empty возвращает пустой справочник (файл не настроен или не найден).
func Empty() *Registry {
	return &Registry{prefixes: map[string]string{}}
}

// Load читает справочник из XLSX файла.
//
// Колонки ищутся по заголовкам первой строки без учёта регистра:
// "Brand" и "Manu ID". Пустой путь — не ошибка, возвращается пустой
// справочник.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Empty(), nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		// Отсутствие файла не фатально: подсказок просто не будет
		utils.Warn("manufacturers file not available", "path", path, "error", err)
		return Empty(), nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Empty(), nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read manufacturers sheet: %w", err)
	}
	if len(rows) < 2 {
		return Empty(), nil
	}

	brandCol, idCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "brand":
			brandCol = i
		case "manu id", "manufacturer id":
			idCol = i
		}
	}
	if brandCol < 0 || idCol < 0 {
		return nil, fmt.Errorf("manufacturers file %s: columns 'Brand' and 'Manu ID' not found", path)
	}

	reg := Empty()
	for _, row := range rows[1:] {
		if brandCol >= len(row) || idCol >= len(row) {
			continue
		}
		brand := strings.TrimSpace(row[brandCol])
		id := strings.TrimSpace(row[idCol])
		if brand == "" || id == "" {
			continue
		}
		key := strings.ToLower(brand)
		if _, exists := reg.prefixes[key]; !exists {
			reg.prefixes[key] = id
			reg.vendors = append(reg.vendors, brand)
		}
	}
	sort.Strings(reg.vendors)

	utils.Info("manufacturers registry loaded", "path", path, "brands", len(reg.vendors))
	return reg, nil
}

// PrefixFor возвращает Manufacturer ID по имени бренда (без учёта регистра).
func (r *Registry) PrefixFor(vendor string) (string, bool) {
	id, ok := r.prefixes[strings.ToLower(strings.TrimSpace(vendor))]
	return id, ok
}

// Vendors возвращает отсортированный список известных брендов.
func (r *Registry) Vendors() []string {
	return r.vendors
}

// Len возвращает число брендов в справочнике.
func (r *Registry) Len() int {
	return len(r.prefixes)
}

// DefaultBrandFolder выводит папку бренда из имени вендора:
// lowercase, пробелы убираются. "AFX Lighting" -> "afxlighting".
func DefaultBrandFolder(vendor string) string {
	folder := strings.ToLower(strings.TrimSpace(vendor))
	folder = strings.ReplaceAll(folder, " ", "")
	folder = strings.ReplaceAll(folder, "\t", "")
	return folder
}
