// Нормализация имён файлов для генерации кодов ассетов.
//
// Slug — тотальная функция: никогда не падает, пустой вход даёт пустой slug.
// Валидность результата проверяет вызывающая сторона.
package utils

import (
	"path"
	"strings"
)

// Slug приводит строку к каноничной форме кода: lowercase,
// все символы вне [a-z0-9_] заменяются на '_', повторы '_' схлопываются,
// ведущие и замыкающие '_' отбрасываются.
//
// Идемпотентна: Slug(Slug(x)) == Slug(x).
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevUnderscore := false
	for _, ch := range strings.ToLower(s) {
		ok := (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
		if ok {
			b.WriteRune(ch)
			prevUnderscore = false
			continue
		}
		// Любой другой символ (включая '_') превращается в один '_'
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// Stem возвращает имя файла без директории и расширения.
//
// Работает и с URL: "https://cdn.x/img/Foo Bar.JPG" → "Foo Bar".
func Stem(filename string) string {
	base := path.Base(strings.TrimSpace(filename))
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// Ext возвращает расширение файла в нижнем регистре, с точкой.
// Для строки без расширения возвращает "".
func Ext(filename string) string {
	return strings.ToLower(path.Ext(strings.TrimSpace(filename)))
}
