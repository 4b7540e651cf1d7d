// Package assets строит нормализованные записи цифровых ассетов
// из подтверждённых колонок вендорской таблицы.
//
// Выходная схема жёсткая: шесть колонок в фиксированном порядке,
// это внешний контракт целевой системы.
package assets

// Family — семейство ассета в целевой схеме.
type Family string

const (
	FamilyMain         Family = "main_product_image"
	FamilyMedia        Family = "media"
	FamilySpecSheet    Family = "spec_sheet"
	FamilyInstallSheet Family = "install_sheet"
)

// Record — одна строка выходного шаблона.
//
// Label всегда равен Code: у целевой схемы нет отдельного
// человекочитаемого имени, это сохранённая причуда контракта.
type Record struct {
	Code             string
	Label            string
	ProductReference string
	ImageLink        string
	Family           Family
	MediaType        string
}

// OutputHeader — имена и порядок колонок выходного шаблона.
// Менять нельзя.
var OutputHeader = []string{
	"code", "label-en_US", "product_reference",
	"imagelink", "assetFamilyIdentifier", "mediatype",
}

// OutputRow возвращает запись в порядке OutputHeader.
func (r Record) OutputRow() []string {
	return []string{
		r.Code, r.Label, r.ProductReference,
		r.ImageLink, string(r.Family), r.MediaType,
	}
}
