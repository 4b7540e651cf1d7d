// Статические таблицы: лексиконы ключевых слов, наборы расширений,
// кандидаты SKU колонки.

package columns

import (
	"strings"

	"github.com/ilkoid/assetgen/pkg/utils"
)

// Взвешенные лексиконы по классам ролей. Вес отражает насколько
// однозначно токен указывает на класс: "image" почти гарантия,
// "sheet" встречается и в "Spec Sheet" и в "Size Sheet".
var (
	imageKeywords = map[string]int{
		"image":       5,
		"img":         4,
		"photo":       5,
		"picture":     4,
		"shot":        3,
		"lifestyle":   3,
		"swatch":      3,
		"infographic": 3,
		"diagram":     3,
		"render":      2,
		"sketch":      2,
		"thumbnail":   2,
	}

	pdfKeywords = map[string]int{
		"pdf":          5,
		"spec":         4,
		"specs":        4,
		"specsheet":    5,
		"sheet":        2,
		"install":      4,
		"installation": 4,
		"assembly":     4,
		"manual":       3,
		"instructions": 3,
		"warranty":     2,
		"guide":        2,
		"dimmer":       2,
	}

	videoKeywords = map[string]int{
		"video":   5,
		"mp4":     4,
		"youtube": 4,
		"vimeo":   4,
		"clip":    2,
		"reel":    2,
	}
)

// Наборы расширений для контентной стадии.
var (
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
	}

	pdfExts = map[string]bool{".pdf": true}

	videoExts = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true, ".wmv": true, ".webm": true,
	}
)

// Категории media type по токенам имени. Первое совпадение побеждает,
// порядок фиксирован. Дефолт при отсутствии совпадений — detail.
var mediaTypeByToken = []struct {
	token     string
	mediaType string
}{
	{"lifestyle", "lifestyle"},
	{"swatch", "swatch"},
	{"infographic", "informational"},
	{"informational", "informational"},
	{"diagram", "dimension"},
	{"dimensional", "dimension"},
	{"dimension", "dimension"},
	{"angle", "angle"},
}

// DefaultMediaType — безопасный дефолт для картиночных колонок
// без явной категории в имени. Перекрывается оператором.
const DefaultMediaType = "detail"

// IsImageExt сообщает, что значение ячейки несёт картиночное расширение.
func IsImageExt(value string) bool { return imageExts[utils.Ext(value)] }

// IsPDFExt сообщает, что значение ячейки несёт .pdf.
func IsPDFExt(value string) bool { return pdfExts[utils.Ext(value)] }

// IsVideoRef сообщает, что значение — видео: по расширению
// либо по маркерам youtube/vimeo в произвольном месте строки.
func IsVideoRef(value string) bool {
	if videoExts[utils.Ext(value)] {
		return true
	}
	lower := strings.ToLower(value)
	return strings.Contains(lower, "youtube") || strings.Contains(lower, "vimeo")
}
