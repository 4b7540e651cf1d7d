// Билдер записей: построчный проход по подтверждённым колонкам.
//
// Конфигурационные ошибки (нет SKU колонки, битый нейминг) валят
// генерацию целиком до первого выходного ряда. Всё остальное
// восстановимо: строка/ячейка пропускается, отчёт пополняется,
// прогон продолжается.

package assets

import (
	"fmt"
	"strings"

	"github.com/ilkoid/assetgen/pkg/columns"
	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/table"
	"github.com/ilkoid/assetgen/pkg/utils"
)

// mainSlot — явное состояние «главная картинка строки занята/свободна».
//
// Порядок подтверждённых колонок определяет какая картинка займёт слот,
// поэтому колонки никогда не переупорядочиваются.
type mainSlot uint8

const (
	slotOpen mainSlot = iota
	slotFilled
)

// Options — параметры прогона билдера.
type Options struct {
	SKUColumn string // Подтверждённая SKU колонка
	Naming    Naming
	HeaderRow int // 1-based физическая строка заголовка, для номеров строк в отчёте
}

// Result — записи плюс отчёт. Записи после создания не мутируются.
type Result struct {
	Records []Record
	Report  *Report
}

// Build генерирует записи ассетов по подтверждённым профилям колонок.
//
// Детерминизм: одинаковый вход и конфиг дают одинаковый батч.
// Порядок выхода: по строкам, внутри строки — по порядку профилей.
// Коды уникальны в пределах батча, первая запись побеждает.
func Build(t *table.SourceTable, profiles []columns.Profile, opts Options) (*Result, error) {
	// === Конфигурационная валидация: без частичного выхода ===
	if !config.ValidPrefix(opts.Naming.Prefix) {
		return nil, fmt.Errorf("manufacturer prefix '%s' must be non-empty alphanumeric", opts.Naming.Prefix)
	}
	if !config.ValidBrandFolder(opts.Naming.BrandFolder) {
		return nil, fmt.Errorf("brand folder '%s' must be a non-empty lowercase token", opts.Naming.BrandFolder)
	}

	skuIdx := t.ColumnIndex(opts.SKUColumn)
	if skuIdx < 0 {
		return nil, fmt.Errorf("sku column '%s' not found in table", opts.SKUColumn)
	}

	report := NewReport(opts.Naming.Prefix, opts.Naming.BrandFolder, opts.SKUColumn)

	// Индексы подтверждённых колонок; пропавшая колонка — в отчёт, не фатал
	type boundProfile struct {
		columns.Profile
		idx int
	}
	bound := make([]boundProfile, 0, len(profiles))
	for _, p := range profiles {
		idx := t.ColumnIndex(p.Name)
		if idx < 0 {
			report.RejectColumn(p.Name, "confirmed column not found in table")
			continue
		}
		bound = append(bound, boundProfile{Profile: p, idx: idx})
	}

	headerRow := opts.HeaderRow
	if headerRow < 1 {
		headerRow = 1
	}

	var records []Record
	seenSKUs := make(map[string]bool)
	seenCodes := make(map[string]bool)

	emit := func(rec Record, rowNum int) {
		if seenCodes[rec.Code] {
			report.DuplicateCode(rec.Code, rowNum)
			return
		}
		seenCodes[rec.Code] = true
		records = append(records, rec)
		report.CountRecord(rec)
	}

	for rowIdx := range t.Rows {
		rowNum := headerRow + 1 + rowIdx // физический номер строки в книге

		sku := t.Cell(rowIdx, skuIdx)
		if sku == "" {
			report.SkipRow(rowNum, "empty SKU")
			continue
		}
		if seenSKUs[sku] {
			report.SkipRow(rowNum, fmt.Sprintf("duplicate SKU '%s' (first occurrence kept)", sku))
			continue
		}
		seenSKUs[sku] = true

		productRef := opts.Naming.ProductReference(sku)
		slot := slotOpen

		for _, p := range bound {
			value := t.Cell(rowIdx, p.idx)
			if value == "" {
				continue
			}

			switch p.Role {
			case columns.RoleImage:
				if columns.IsVideoRef(value) {
					report.FlagCell(rowNum, p.Name, "video marker in image column")
					continue
				}
				if isBareURL(value) {
					report.FlagCell(rowNum, p.Name, "url in image column")
					continue
				}
				if !columns.IsImageExt(value) {
					// Шумовая ячейка в картиночной по большинству колонке
					continue
				}

				stem := utils.Stem(value)
				if slot == slotOpen {
					emit(Record{
						Code:             opts.Naming.ImageCode(stem),
						Label:            opts.Naming.ImageCode(stem),
						ProductReference: productRef,
						ImageLink:        opts.Naming.ImageLink(stem, FolderProducts),
						Family:           FamilyMain,
						MediaType:        "",
					}, rowNum)
					slot = slotFilled
					continue
				}
				emit(Record{
					Code:             opts.Naming.ImageCode(stem),
					Label:            opts.Naming.ImageCode(stem),
					ProductReference: productRef,
					ImageLink:        opts.Naming.ImageLink(stem, FolderMedia),
					Family:           FamilyMedia,
					MediaType:        mediaTypeOrDefault(p.MediaType),
				}, rowNum)

			case columns.RolePDF:
				if columns.IsVideoRef(value) {
					report.FlagCell(rowNum, p.Name, "video marker in pdf column")
					continue
				}
				if !columns.IsPDFExt(value) {
					continue
				}

				stem := utils.Stem(value)
				emit(Record{
					Code:             opts.Naming.PDFCode(stem),
					Label:            opts.Naming.PDFCode(stem),
					ProductReference: productRef,
					ImageLink:        opts.Naming.PDFLink(stem),
					Family:           pdfFamily(p.Name),
					MediaType:        "",
				}, rowNum)

			case columns.RoleVideo:
				if !columns.IsVideoRef(value) {
					continue
				}

				stem := utils.Stem(value)
				emit(Record{
					Code:             opts.Naming.VideoCode(stem),
					Label:            opts.Naming.VideoCode(stem),
					ProductReference: productRef,
					ImageLink:        opts.Naming.VideoLink(value),
					Family:           FamilyMedia,
					MediaType:        columns.DefaultMediaType,
				}, rowNum)

			default:
				// none/url/sku в подтверждённый набор не попадают
			}
		}
	}

	return &Result{Records: records, Report: report}, nil
}

// pdfFamily: install_sheet для инсталляционных документов, иначе spec_sheet.
func pdfFamily(columnName string) Family {
	lower := strings.ToLower(columnName)
	if strings.Contains(lower, "install") || strings.Contains(lower, "assembly") {
		return FamilyInstallSheet
	}
	return FamilySpecSheet
}

// isBareURL: значение — голая ссылка, а не имя файла.
func isBareURL(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func mediaTypeOrDefault(mt string) string {
	if mt == "" {
		return columns.DefaultMediaType
	}
	return mt
}
