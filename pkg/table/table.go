// Package table представляет вендорскую таблицу в памяти.
//
// SourceTable — эфемерная структура: читается один раз на прогон,
// ядро её никогда не мутирует.
package table

import "strings"

// SourceTable — строки x именованные колонки разнородных значений.
//
// Все значения хранятся строками как пришли из книги; пустая строка
// означает пустую ячейку. Строки выровнены по ширине заголовка.
type SourceTable struct {
	Columns []string
	Rows    [][]string
}

// ColumnNames возвращает заголовок таблицы.
func (t *SourceTable) ColumnNames() []string {
	return t.Columns
}

// ColumnIndex ищет колонку по имени: сперва точное совпадение,
// затем case-insensitive. Возвращает -1 если колонки нет.
func (t *SourceTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	lower := strings.ToLower(name)
	for i, c := range t.Columns {
		if strings.ToLower(c) == lower {
			return i
		}
	}
	return -1
}

// Cell возвращает обрезанное значение ячейки.
// Выход за границы — пустая строка, не паника.
func (t *SourceTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// ColumnValues возвращает до limit непустых значений колонки сверху вниз.
//
// Используется контентной стадией классификатора ролей (limit = 30).
func (t *SourceTable) ColumnValues(col int, limit int) []string {
	var out []string
	for row := range t.Rows {
		if limit > 0 && len(out) >= limit {
			break
		}
		v := t.Cell(row, col)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// RowCount возвращает количество строк данных.
func (t *SourceTable) RowCount() int {
	return len(t.Rows)
}
