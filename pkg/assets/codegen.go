// Правила синтеза кодов и путей — ядро внешнего контракта.
//
// Код всегда lowercase (через Slug), ссылка сохраняет оригинальный
// регистр имени файла. Суффиксы фиксированы: _new_1k для картинок,
// _specs/_new.pdf для спеков, видео — без суффикса и как есть.

package assets

import (
	"fmt"

	"github.com/ilkoid/assetgen/pkg/utils"
)

// Naming — параметры синтеза: префикс производителя и папка бренда.
type Naming struct {
	Prefix      string // Manufacturer ID, например "2605"
	BrandFolder string // Например "afx"
}

// Папки назначения внутри папки бренда.
const (
	FolderProducts   = "products"   // Первая валидная картинка строки
	FolderMedia      = "media"      // Остальные картинки и видео
	FolderSpecsheets = "specsheets" // PDF документы
)

// ImageCode: {prefix}_{slug(stem)}_new_1k.
func (n Naming) ImageCode(stem string) string {
	return fmt.Sprintf("%s_%s_new_1k", n.Prefix, utils.Slug(stem))
}

// ImageLink: {brand}/{folder}/{stem}_new_1k.jpg — stem в оригинальном регистре.
func (n Naming) ImageLink(stem, folder string) string {
	return fmt.Sprintf("%s/%s/%s_new_1k.jpg", n.BrandFolder, folder, stem)
}

// PDFCode: {prefix}_{slug(stem)}_specs.
func (n Naming) PDFCode(stem string) string {
	return fmt.Sprintf("%s_%s_specs", n.Prefix, utils.Slug(stem))
}

// PDFLink: {brand}/specsheets/{stem}_new.pdf.
func (n Naming) PDFLink(stem string) string {
	return fmt.Sprintf("%s/%s/%s_new.pdf", n.BrandFolder, FolderSpecsheets, stem)
}

// VideoCode: {prefix}_{slug(stem)} — без суффикса.
func (n Naming) VideoCode(stem string) string {
	return fmt.Sprintf("%s_%s", n.Prefix, utils.Slug(stem))
}

// VideoLink: {brand}/media/{filename} — имя файла дословно.
func (n Naming) VideoLink(filename string) string {
	return fmt.Sprintf("%s/%s/%s", n.BrandFolder, FolderMedia, filename)
}

// ProductReference: {prefix}_{sku}.
//
// Наблюдались варианты и с голым SKU; выбран префиксованный,
// см. DESIGN.md.
func (n Naming) ProductReference(sku string) string {
	return fmt.Sprintf("%s_%s", n.Prefix, sku)
}
