// Классификатор ролей колонок: именная стадия + контентная стадия.
//
// Чистая функция без побочных эффектов — решение «угадай колонку»
// живёт здесь, а не в коде интерфейса, и тестируется отдельно.

package columns

import (
	"fmt"
	"sort"
	"strings"
)

// SampleLimit — сколько непустых значений колонки смотрит контентная стадия.
const SampleLimit = 30

// Table — минимальный контракт источника данных.
// *table.SourceTable его реализует; в тестах удобно подставлять фейк.
type Table interface {
	ColumnNames() []string
	ColumnValues(col int, limit int) []string
	RowCount() int
}

// Classify выводит роль каждой колонки таблицы.
//
// Алгоритм:
//  1. Колонки-дубликаты вида "... URL"/"... Link" исключаются из прохода —
//     их подбирает отдельный URL-pairing (см. PairURLColumns).
//  2. Именная стадия: токены заголовка скорятся по трём лексиконам.
//     Колонка без единого именного совпадения исключается совсем —
//     на широких листах (100+ колонок) это отсекает весь шум.
//  3. Контентная стадия: до 30 непустых значений, подсчёт расширений
//     по классам. Контент главнее имени: "Spec Sheet Image" со сплошными
//     .pdf внутри — это pdf колонка.
//  4. Именное совпадение без единого подходящего расширения — в Rejected,
//     с причиной. Никогда не отбрасывается молча.
//
// Confidence = (совпавшие расширения победившего класса) / min(семплов, 30) * 100.
// Результат упорядочен по убыванию confidence, при равенстве — порядок колонок
// в файле. Пустая таблица даёт всем кандидатам role=none и confidence 0.
func Classify(t Table) ([]Profile, []Rejected) {
	names := t.ColumnNames()
	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var profiles []Profile
	var rejected []Rejected

	for idx, name := range names {
		// 1. URL-дубликаты обрабатывает отдельный проход
		if base, ok := urlVariantBase(name); ok && nameSet[strings.ToLower(base)] {
			continue
		}

		// 2. Именная стадия
		nameScores := scoreName(name)
		if nameScores.total() == 0 {
			continue
		}

		// Пустая таблица: кандидатов показываем, но роли не присваиваем
		if t.RowCount() == 0 {
			profiles = append(profiles, Profile{
				Name:      name,
				Role:      RoleNone,
				MediaType: mediaTypeFor(name),
				Evidence:  fmt.Sprintf("name:%s; no rows to sample", nameScores),
			})
			continue
		}

		// 3. Контентная стадия
		samples := t.ColumnValues(idx, SampleLimit)
		if len(samples) == 0 {
			rejected = append(rejected, Rejected{
				Name:   name,
				Reason: "keyword match but column is empty",
			})
			continue
		}

		hits := countExtensions(samples)
		role, matched := hits.winner(nameScores)
		if role == RoleNone {
			// 4. Ключевое слово есть, подтверждающих расширений нет
			rejected = append(rejected, Rejected{
				Name:   name,
				Reason: fmt.Sprintf("no matching extension in %d sampled values", len(samples)),
			})
			continue
		}

		confidence := matched * 100 / len(samples)
		profiles = append(profiles, Profile{
			Name:       name,
			Samples:    samples,
			Role:       role,
			MediaType:  mediaTypeForRole(role, name),
			Confidence: confidence,
			Evidence: fmt.Sprintf("name:%s; content:%d/%d %s",
				nameScores, matched, len(samples), role),
		})
	}

	// Сортировка стабильная: при равном confidence сохраняем порядок файла
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Confidence > profiles[j].Confidence
	})

	return profiles, rejected
}

// nameScore — очки именной стадии по трём классам.
type nameScore struct {
	image, pdf, video int
}

func (s nameScore) total() int { return s.image + s.pdf + s.video }

func (s nameScore) String() string {
	var parts []string
	if s.image > 0 {
		parts = append(parts, fmt.Sprintf("image(%d)", s.image))
	}
	if s.pdf > 0 {
		parts = append(parts, fmt.Sprintf("pdf(%d)", s.pdf))
	}
	if s.video > 0 {
		parts = append(parts, fmt.Sprintf("video(%d)", s.video))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// scoreName токенизирует заголовок по не-алфавитно-цифровым границам
// и суммирует веса совпавших токенов по каждому лексикону.
func scoreName(name string) nameScore {
	var s nameScore
	for _, tok := range tokenize(name) {
		s.image += imageKeywords[tok]
		s.pdf += pdfKeywords[tok]
		s.video += videoKeywords[tok]
	}
	return s
}

// tokenize режет строку на lowercase токены по любым разделителям.
// "B/B Image Dimensional" -> [b b image dimensional].
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

// extHits — подсчёт расширений в семплах по классам.
type extHits struct {
	image, pdf, video int
}

func countExtensions(samples []string) extHits {
	var h extHits
	for _, v := range samples {
		switch {
		case IsImageExt(v):
			h.image++
		case IsPDFExt(v):
			h.pdf++
		case IsVideoRef(v):
			h.video++
		}
	}
	return h
}

// winner выбирает класс по контентным уликам.
//
// Побеждает класс с максимумом совпавших расширений; при равенстве
// решают именные очки (контент главнее имени, имя — только tie-break).
// Ноль совпадений по всем классам — RoleNone.
func (h extHits) winner(name nameScore) (Role, int) {
	type cand struct {
		role      Role
		hits      int
		nameScore int
	}
	cands := []cand{
		{RoleImage, h.image, name.image},
		{RolePDF, h.pdf, name.pdf},
		{RoleVideo, h.video, name.video},
	}

	best := cand{role: RoleNone}
	for _, c := range cands {
		if c.hits > best.hits || (c.hits == best.hits && c.hits > 0 && c.nameScore > best.nameScore) {
			best = c
		}
	}
	if best.hits == 0 {
		return RoleNone, 0
	}
	return best.role, best.hits
}

// mediaTypeFor выводит категорию media type из токенов имени.
func mediaTypeFor(name string) string {
	lower := strings.ToLower(name)
	for _, m := range mediaTypeByToken {
		if strings.Contains(lower, m.token) {
			return m.mediaType
		}
	}
	return DefaultMediaType
}

// mediaTypeForRole: категория нужна только картинкам; pdf и видео
// получают фиксированные значения в билдере.
func mediaTypeForRole(role Role, name string) string {
	if role != RoleImage {
		return ""
	}
	return mediaTypeFor(name)
}
