// Чтение и запись xlsx через excelize.
//
// Вся I/O логика собрана здесь: ядро (columns, assets) работает
// только с SourceTable и ничего не знает про формат книги.

package table

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxHeaderRow — заголовок ищем только в первых пяти строках.
const MaxHeaderRow = 5

// ListSheets возвращает имена листов книги в порядке следования.
func ListSheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadPreview читает первые n сырых строк листа.
//
// Показывается оператору для выбора строки заголовка.
func ReadPreview(path, sheet string, n int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet '%s': %w", sheet, err)
	}

	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// ReadTable читает лист с заданной строкой заголовка (1-based, 1..5).
//
// Строки выше заголовка отбрасываются, строки ниже становятся данными.
// Каждая строка данных дополняется пустыми ячейками до ширины заголовка.
// Пустые имена колонок получают вид "Column N" чтобы индексация не ломалась.
func ReadTable(path, sheet string, headerRow int) (*SourceTable, error) {
	if headerRow < 1 || headerRow > MaxHeaderRow {
		return nil, fmt.Errorf("header row must be in 1..%d, got %d", MaxHeaderRow, headerRow)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet '%s': %w", sheet, err)
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("sheet '%s' has %d rows, header row %d is out of range", sheet, len(rows), headerRow)
	}

	header := rows[headerRow-1]
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		columns[i] = name
	}

	data := make([][]string, 0, len(rows)-headerRow)
	for _, raw := range rows[headerRow:] {
		row := make([]string, len(columns))
		copy(row, raw)
		data = append(data, row)
	}

	return &SourceTable{Columns: columns, Rows: data}, nil
}

// WriteSheet пишет книгу с одним листом: заголовок + строки.
//
// Используется для шестиколоночного выходного шаблона; порядок
// колонок сохраняется как передан.
func WriteSheet(path, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	write := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		// SetSheetRow принимает срез значений целиком
		converted := make([]interface{}, len(values))
		for i, v := range values {
			converted[i] = v
		}
		return f.SetSheetRow(sheet, cell, &converted)
	}

	if err := write(1, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if err := write(i+2, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
