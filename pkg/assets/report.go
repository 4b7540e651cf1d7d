// Текстовый отчёт прогона. Формат советующий, не контракт:
// счётчики по семействам, пропущенные строки, дубликаты, отклонённые колонки.

package assets

import (
	"fmt"
	"strings"
)

// listCap — длинные списки в отчёте обрезаются с хвостом "+N more".
const listCap = 20

// Report накапливает всё восстановимое: пропуски строк, дубликаты
// SKU и кодов, помеченные ячейки. Заполняется билдером по ходу прогона.
type Report struct {
	Prefix      string
	BrandFolder string
	SKUColumn   string

	FamilyCounts map[Family]int

	SkippedRows     []string // "Row 5: empty SKU"
	DuplicateCodes  []string
	FlaggedCells    []string // видео/URL маркеры не на своём месте
	RejectedColumns []string // имя + причина, из классификатора ролей
}

// NewReport создаёт пустой отчёт с заполненной шапкой.
func NewReport(prefix, brandFolder, skuColumn string) *Report {
	return &Report{
		Prefix:       prefix,
		BrandFolder:  brandFolder,
		SKUColumn:    skuColumn,
		FamilyCounts: make(map[Family]int),
	}
}

// CountRecord учитывает запись в счётчиках семейств.
func (r *Report) CountRecord(rec Record) {
	r.FamilyCounts[rec.Family]++
}

// SkipRow фиксирует пропуск строки: номер 1-based как в книге.
func (r *Report) SkipRow(rowNum int, reason string) {
	r.SkippedRows = append(r.SkippedRows, fmt.Sprintf("Row %d: %s", rowNum, reason))
}

// DuplicateCode фиксирует коллизию кода (поздняя запись отброшена).
func (r *Report) DuplicateCode(code string, rowNum int) {
	r.DuplicateCodes = append(r.DuplicateCodes, fmt.Sprintf("Row %d: %s", rowNum, code))
}

// FlagCell фиксирует подозрительную ячейку (скип, не ошибка).
func (r *Report) FlagCell(rowNum int, column, reason string) {
	r.FlaggedCells = append(r.FlaggedCells, fmt.Sprintf("Row %d [%s]: %s", rowNum, column, reason))
}

// RejectColumn фиксирует колонку, отклонённую классификатором.
func (r *Report) RejectColumn(name, reason string) {
	r.RejectedColumns = append(r.RejectedColumns, fmt.Sprintf("%s: %s", name, reason))
}

// Total возвращает суммарное количество записей.
func (r *Report) Total() int {
	total := 0
	for _, n := range r.FamilyCounts {
		total += n
	}
	return total
}

// Render собирает финальный текст отчёта.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString("=== ASSET TEMPLATE GENERATION LOG ===\n")
	fmt.Fprintf(&b, "Manufacturer Prefix : %s\n", r.Prefix)
	fmt.Fprintf(&b, "Brand Folder        : %s\n", r.BrandFolder)
	fmt.Fprintf(&b, "SKU Column          : %s\n", r.SKUColumn)
	b.WriteString("\n=== SUMMARY ===\n")
	fmt.Fprintf(&b, "Total output rows     : %d\n", r.Total())
	fmt.Fprintf(&b, "main_product_image    : %d\n", r.FamilyCounts[FamilyMain])
	fmt.Fprintf(&b, "media                 : %d\n", r.FamilyCounts[FamilyMedia])
	fmt.Fprintf(&b, "spec_sheet            : %d\n", r.FamilyCounts[FamilySpecSheet])
	fmt.Fprintf(&b, "install_sheet         : %d\n", r.FamilyCounts[FamilyInstallSheet])

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s (%d):\n", title, len(items))
		shown := items
		if len(shown) > listCap {
			shown = shown[:listCap]
		}
		for _, item := range shown {
			fmt.Fprintf(&b, "  %s\n", item)
		}
		if rest := len(items) - listCap; rest > 0 {
			fmt.Fprintf(&b, "  ... and %d more\n", rest)
		}
	}

	writeList("Skipped rows", r.SkippedRows)
	writeList("Duplicate codes", r.DuplicateCodes)
	writeList("Flagged cells", r.FlaggedCells)
	writeList("Rejected columns", r.RejectedColumns)

	return b.String()
}
